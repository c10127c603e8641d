package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Receipt rendering configuration
	Receipt ReceiptConfig `mapstructure:"receipt"`

	// Thermal printer configuration
	Printer PrinterConfig `mapstructure:"printer"`

	// Share surface configuration
	Share ShareConfig `mapstructure:"share"`

	// Patient lookup configuration
	Lookup LookupConfig `mapstructure:"lookup"`

	// Monitoring configuration
	Monitoring MonitoringConfig `mapstructure:"monitoring"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// ReceiptConfig holds receipt rendering configuration
type ReceiptConfig struct {
	Title           string `mapstructure:"title"`
	Footer          string `mapstructure:"footer"`
	Width           int    `mapstructure:"width"`
	BarcodeStrategy string `mapstructure:"barcode_strategy"`
}

// PrinterConfig holds thermal printer configuration
type PrinterConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	DeviceAddress  string `mapstructure:"device_address"`
	HeaderFontPx   int    `mapstructure:"header_font_px"`
	BodyFontPx     int    `mapstructure:"body_font_px"`
	CodeWidth      int    `mapstructure:"code_width"`
	CodeHeight     int    `mapstructure:"code_height"`
	CommandTimeout int    `mapstructure:"command_timeout"`
}

// ShareConfig holds share surface configuration
type ShareConfig struct {
	Title string `mapstructure:"title"`
}

// LookupConfig holds patient lookup configuration
type LookupConfig struct {
	DelayMs int `mapstructure:"delay_ms"`
}

// MonitoringConfig holds monitoring configuration
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
	HealthPath  string `mapstructure:"health_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/assuredid")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	overrideWithEnv(&config)

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8084)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.idle_timeout", 120)

	// Receipt defaults
	viper.SetDefault("receipt.title", "AssuredID Scanner - Receipt")
	viper.SetDefault("receipt.footer", "Thank you for your purchase!")
	viper.SetDefault("receipt.width", 64)
	viper.SetDefault("receipt.barcode_strategy", "symbol")

	// Printer defaults
	viper.SetDefault("printer.enabled", false)
	viper.SetDefault("printer.header_font_px", 28)
	viper.SetDefault("printer.body_font_px", 22)
	viper.SetDefault("printer.code_width", 300)
	viper.SetDefault("printer.code_height", 80)
	viper.SetDefault("printer.command_timeout", 10)

	// Share defaults
	viper.SetDefault("share.title", "AssuredID Receipt")

	// Lookup defaults
	viper.SetDefault("lookup.delay_ms", 1000)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
	viper.SetDefault("monitoring.health_path", "/health")

	// Logging defaults
	viper.SetDefault("log_level", "info")
}

// overrideWithEnv overrides configuration with environment variables
func overrideWithEnv(config *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if addr := os.Getenv("PRINTER_ADDRESS"); addr != "" {
		config.Printer.DeviceAddress = addr
		config.Printer.Enabled = true
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Receipt.Width < 32 {
		return fmt.Errorf("receipt width %d is too narrow", config.Receipt.Width)
	}

	switch config.Receipt.BarcodeStrategy {
	case "symbol", "modulo", "short-modulo":
	default:
		return fmt.Errorf("unknown barcode strategy: %s", config.Receipt.BarcodeStrategy)
	}

	if config.Printer.Enabled && config.Printer.DeviceAddress == "" {
		return fmt.Errorf("printer device address is required when printer is enabled")
	}

	return nil
}
