package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Ensure ClientTransport implements interfaces.Transport
var _ interfaces.Transport = (*ClientTransport)(nil)

// ClientTransport performs HTTP exchanges with the built-in client. Timeouts
// are imposed externally through the context; the process does not
// self-timeout.
type ClientTransport struct {
	client *http.Client
}

func NewClientTransport() *ClientTransport {
	return &ClientTransport{client: &http.Client{}}
}

func (t *ClientTransport) Name() string {
	return "client"
}

func (t *ClientTransport) Do(ctx context.Context, req models.FetchRequest) (*models.FetchResponse, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &models.FetchResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}
