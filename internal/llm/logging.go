package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RequestEvent captures one model call for the event log.
type RequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRecorder persists request events. Implemented by the store; kept
// as a consumer-side interface so the transport has no storage dependency.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, ev RequestEvent) error
}

// LoggingProvider is a decorator that records every model call as an
// event and a structured log line.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   EventRecorder
	log      zerolog.Logger
}

// WithLogging wraps a Provider with event and log recording. provider
// names the backend ("gemini", "openai", ...). events may be nil, in
// which case only log lines are emitted.
func WithLogging(p Provider, provider string, events EventRecorder, log zerolog.Logger) Provider {
	return &LoggingProvider{
		inner:    p,
		provider: provider,
		events:   events,
		log:      log.With().Str("component", "llm").Logger(),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	ev := RequestEvent{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = resp.Model
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	if err != nil {
		l.log.Warn().Err(err).Str("purpose", purpose).Int64("ms", ev.LatencyMs).Msg("model call failed")
	} else {
		l.log.Debug().Str("purpose", purpose).Str("model", ev.Model).
			Int("in", ev.InputTokens).Int("out", ev.OutputTokens).
			Int64("ms", ev.LatencyMs).Msg("model call")
	}

	// Record the event but don't fail the request if recording fails.
	if l.events != nil {
		if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
			l.log.Warn().Err(logErr).Msg("failed to record model request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
