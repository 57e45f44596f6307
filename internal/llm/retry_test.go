package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		MaxJitter:   1 * time.Millisecond,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: `{"ok":true}`},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientsThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: `{"ok":true}`},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	var responses []MockResponse
	for range 5 {
		responses = append(responses, MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	}
	mock := NewMockProvider(responses...)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 5 {
		t.Fatalf("expected 5 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TerminalErrorNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Text: `{"ok":true}`},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelAbortsBackoff(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: `{"ok":true}`},
	)
	cfg := retryConfig()
	cfg.InitialWait = 10 * time.Second
	p := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := p.Generate(ctx, Request{})
		done <- err
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancel")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_BackoffHonorsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: 42 * time.Millisecond})
	if wait != 42*time.Millisecond {
		t.Fatalf("expected RetryAfter to win, got %v", wait)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts: 5,
		InitialWait: 1 * time.Second,
		MaxWait:     60 * time.Second,
		MaxJitter:   300 * time.Millisecond,
	}
	r := &RetryProvider{config: cfg}

	for attempt := range 10 {
		wait := r.backoff(attempt, errors.New("timeout"))
		base := 1 * time.Second << attempt
		if base > 60*time.Second {
			base = 60 * time.Second
		}
		if wait < base || wait > base+300*time.Millisecond {
			t.Fatalf("attempt %d: wait %v outside [%v, %v]", attempt, wait, base, base+300*time.Millisecond)
		}
	}
}
