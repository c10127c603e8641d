package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/HasSanK911/AssuredID-Scanner/internal/barcode"
	"github.com/HasSanK911/AssuredID-Scanner/internal/catalog"
	"github.com/HasSanK911/AssuredID-Scanner/internal/dispatch"
	"github.com/HasSanK911/AssuredID-Scanner/internal/lookup"
	"github.com/HasSanK911/AssuredID-Scanner/internal/pos"
	"github.com/HasSanK911/AssuredID-Scanner/internal/printer"
	"github.com/HasSanK911/AssuredID-Scanner/internal/receipt"
	"github.com/HasSanK911/AssuredID-Scanner/internal/share"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/config"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/interfaces"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/logger"
	"github.com/HasSanK911/AssuredID-Scanner/pkg/monitoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	var metrics *monitoring.MetricsCollector
	if cfg.Monitoring.Enabled {
		metrics = monitoring.NewMetricsCollector("receipt-service")
	}

	encoder := barcode.New(cfg.Receipt.BarcodeStrategy)
	composer := receipt.NewComposer(encoder, cfg.Receipt.Title, cfg.Receipt.Footer, cfg.Receipt.Width)

	var thermalPrinter interfaces.ThermalPrinter
	if cfg.Printer.Enabled {
		adapter, err := printer.Dial(cfg.Printer.DeviceAddress, time.Duration(cfg.Printer.CommandTimeout)*time.Second)
		if err != nil {
			// The dispatcher falls back to share; an unreachable printer
			// at startup is not fatal
			appLogger.WithComponent("main").WithError(err).Warn("Printer unreachable, continuing with share path only")
		} else {
			thermalPrinter = adapter
		}
	}

	dispatcher := dispatch.NewDispatcher(
		thermalPrinter,
		share.NewWriterPresenter(os.Stdout),
		composer,
		appLogger,
		metrics,
		dispatch.Options{
			ShareTitle:   cfg.Share.Title,
			HeaderFontPx: cfg.Printer.HeaderFontPx,
			BodyFontPx:   cfg.Printer.BodyFontPx,
			CodeWidth:    cfg.Printer.CodeWidth,
			CodeHeight:   cfg.Printer.CodeHeight,
		},
	)

	service := pos.NewService(
		catalog.NewStaticProvider(),
		lookup.NewStubLookup(time.Duration(cfg.Lookup.DelayMs)*time.Millisecond),
		composer,
		dispatcher,
		receipt.NewIDSource(),
		appLogger,
		metrics,
	)

	handlers := pos.NewHandlers(service)

	router := mux.NewRouter()

	posRouter := router.PathPrefix("/api/v1/pos").Subrouter()
	handlers.RegisterRoutes(posRouter)

	router.Use(pos.RequestIDMiddleware)
	router.Use(loggingMiddleware(appLogger))
	router.Use(corsMiddleware)
	if metrics != nil {
		router.Use(metrics.HTTPMiddleware)
		router.Handle(cfg.Monitoring.MetricsPath, metrics.Handler()).Methods("GET")
	}

	router.HandleFunc(cfg.Monitoring.HealthPath, healthCheckHandler).Methods("GET")

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	appLogger.WithFields(map[string]interface{}{
		"addr":            addr,
		"printer_enabled": thermalPrinter != nil,
	}).Info("Starting Receipt Service")

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(appLogger *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			appLogger.HTTPRequest(r.Context(), r.Method, r.URL.Path, http.StatusOK, time.Since(start).Milliseconds())
		})
	}
}

// corsMiddleware handles CORS headers for the kiosk frontend
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthCheckHandler handles health check requests
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy", "service": "receipt-service"}`))
}
