package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// TransportError wraps a failed round trip and records whether the failure
// was a timeout or a connection-level error.
type TransportError struct {
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("connection failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Do executes a single HTTP request. The buildReq function produces the
// request so callers can attach context and headers the same way on every
// call site. Transport failures come back as *TransportError; the response
// is returned untouched for status handling by the caller.
func Do(ctx context.Context, client *http.Client, buildReq func() (*http.Request, error)) (*http.Response, error) {
	req, err := buildReq()
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, &TransportError{Timeout: true, Err: err}
		}
		return nil, &TransportError{Err: err}
	}

	return resp, nil
}

// ReadLimited drains at most n bytes of a response body, for error reporting.
func ReadLimited(r io.Reader, n int64) string {
	b, _ := io.ReadAll(io.LimitReader(r, n))
	return string(b)
}
