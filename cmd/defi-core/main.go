package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/status-im/defi-native-core/internal/cerrors"
	"github.com/status-im/defi-native-core/internal/protocol"
)

// main reads one JSON request from stdin, writes one JSON response to stdout,
// and exits 0. Application-level failures are signaled through the response
// envelope, never the exit code; timeouts are the spawning layer's job.
func main() {
	root, err := NewCompositionRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		payload := protocol.EncodeError(cerrors.Wrap(cerrors.CodeInternal, "initialization failed", err))
		_ = protocol.Write(os.Stdout, payload)
		return
	}
	defer root.Cleanup()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		payload := protocol.EncodeError(cerrors.Wrap(cerrors.CodeInternal, "failed to read request", err))
		_ = protocol.Write(os.Stdout, payload)
		return
	}

	payload := root.Dispatcher.Handle(context.Background(), input)
	_ = protocol.Write(os.Stdout, payload)
}
