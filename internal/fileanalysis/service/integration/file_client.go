package integration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrFileNotFound — file-storing не знает такой fileId.
var ErrFileNotFound = errors.New("file not found")

// UpstreamError — file-storing ответил не-2xx; статус и тело сохраняются
// для диагностики у вызывающего.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("file service returned status %d: %s", e.Status, e.Body)
}

type FileClient interface {
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)
}

type fileClient struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewFileClient(baseURL string, timeout time.Duration, logger zerolog.Logger) FileClient {
	return &fileClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetFileContent забирает исходный текст сдачи. Одна попытка, без ретраев:
// сбой сразу отдаётся вызывающему.
func (c *fileClient) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	url := fmt.Sprintf("%s/files/%s", c.baseURL, fileID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get file content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("file_id", fileID).
		Int("content_size", len(content)).
		Msg("Got file content")

	return content, nil
}
