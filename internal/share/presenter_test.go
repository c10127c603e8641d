package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestShare_WritesTitleAndMessage(t *testing.T) {
	var buf bytes.Buffer
	presenter := NewWriterPresenter(&buf)

	err := presenter.Share(context.Background(), "receipt body", "AssuredID Receipt")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "AssuredID Receipt")
	assert.Contains(t, buf.String(), "receipt body")
}

func TestShare_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	presenter := NewWriterPresenter(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := presenter.Share(ctx, "receipt body", "AssuredID Receipt")

	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestShare_WriteFailure(t *testing.T) {
	presenter := NewWriterPresenter(failingWriter{})

	err := presenter.Share(context.Background(), "receipt body", "AssuredID Receipt")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "share surface")
}
