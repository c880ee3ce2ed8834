package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errCityNotFound = errors.New("city not found")
	errUnauthorized = errors.New("api key rejected")
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// newCircuitBreaker returns the breaker guarding one upstream. Only transport
// failures, 429 and 5xx answers count against it; an unknown city does not.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})
}

// doRequest executes at most one HTTP request through the circuit breaker.
// There is no retry: a failed attempt is reported to the caller as is. While
// the breaker is open no request is sent and errCircuitOpen is returned.
// Failures caused by the caller's own context do not count against the
// breaker.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	var canceled error
	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			if ctx.Err() != nil {
				canceled = execErr
				return nil, nil
			}
			return nil, execErr
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			drain(resp)
			return nil, errRateLimited
		}
		if resp.StatusCode >= 500 {
			drain(resp)
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}
	if canceled != nil {
		return nil, canceled
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp)
		return nil, errCityNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		drain(resp)
		return nil, errUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		drain(resp)
		return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	resp.Body.Close()
}
