package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ErrStatus indicates a non-200 response from a marketplace.
type ErrStatus struct {
	Code int
}

func (e ErrStatus) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// ErrTimeout indicates the request exceeded its deadline.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("timeout: %v", e.Err)
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Sprintf("connection: %v", e.Err)
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrorLabel buckets an adapter error for logs and metrics.
func ErrorLabel(err error) string {
	if err == nil {
		return "none"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var status ErrStatus
	if errors.As(err, &status) {
		return "status"
	}
	return "other"
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}
	return err
}

// Fetcher retrieves marketplace pages with a bounded timeout and a browser
// user agent. It has no retry policy; callers treat any failure as "no page".
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a fetcher. A nil transport uses the default one; tests
// inject a mock transport here.
func NewFetcher(timeout time.Duration, userAgent string, transport http.RoundTripper) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}
}

// Fetch returns the body of url, or an error for any non-200 outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrStatus{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classify(err)
	}
	return string(body), nil
}
