package httpx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/status-im/defi-native-core/internal/interfaces"
	"github.com/status-im/defi-native-core/internal/models"
)

// Ensure CurlTransport implements interfaces.Transport
var _ interfaces.Transport = (*CurlTransport)(nil)

// CurlTransport shells out to curl. It exists as an interchangeable fallback
// for environments where the built-in client is blocked (e.g. proxy setups
// that only curl's resolver honors).
type CurlTransport struct {
	binary string
}

func NewCurlTransport() *CurlTransport {
	return &CurlTransport{binary: "curl"}
}

func (t *CurlTransport) Name() string {
	return "curl"
}

func (t *CurlTransport) Do(ctx context.Context, req models.FetchRequest) (*models.FetchResponse, error) {
	// The status code is appended on its own line so the body can be split
	// off without parsing headers.
	args := []string{"-sS", "-X", req.Method, "-w", "\n%{http_code}"}
	for key, value := range req.Headers {
		args = append(args, "-H", fmt.Sprintf("%s: %s", key, value))
	}
	if len(req.Body) > 0 {
		args = append(args, "--data-binary", "@-")
	}
	args = append(args, req.URL)

	cmd := exec.CommandContext(ctx, t.binary, args...)
	if len(req.Body) > 0 {
		cmd.Stdin = bytes.NewReader(req.Body)
	}

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("curl failed: %w", err)
	}

	cut := bytes.LastIndexByte(output, '\n')
	if cut < 0 {
		return nil, fmt.Errorf("curl produced no status line")
	}
	status, err := strconv.Atoi(string(bytes.TrimSpace(output[cut+1:])))
	if err != nil {
		return nil, fmt.Errorf("curl produced invalid status %q", output[cut+1:])
	}

	return &models.FetchResponse{StatusCode: status, Body: output[:cut]}, nil
}
