package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "transcript", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "transcript" || calls != 1 {
		t.Errorf("got %q after %d calls, want transcript after 1", got, calls)
	}
}

func TestRetryDoRecoversFromTransient(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), fastRetryConfig(), func() (int, error) {
		calls++
		if calls < 3 {
			return 0, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("got %d after %d calls, want 42 after 3", got, calls)
	}
}

func TestRetryDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("captions disabled for this video")
	calls := 0
	_, err := RetryDo(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "", permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent error)", calls)
	}
}

func TestRetryDoExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := RetryDo(context.Background(), fastRetryConfig(), func() (string, error) {
		calls++
		return "", &httpStatusError{StatusCode: 503}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (initial + 2 retries)", calls)
	}
}

func TestRetryDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := RetryDo(ctx, fastRetryConfig(), func() (string, error) {
		calls++
		return "", &httpStatusError{StatusCode: 503}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0 with pre-cancelled context", calls)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{200, false},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		if got := isRetryableStatus(tt.code); got != tt.want {
			t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	err := &httpStatusError{StatusCode: 429}
	if err.Error() != "http 429 Too Many Requests" {
		t.Errorf("message = %q", err.Error())
	}
}
