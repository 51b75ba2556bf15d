package llm

import (
	"context"
	"time"

	"github.com/abhisek/disha/internal/store"
	"github.com/rs/zerolog"
)

// LoggingProvider records every request in the llm_requests table and the
// application log.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      zerolog.Logger
	now      func() time.Time
}

// WithLogging wraps p. events may be nil, in which case only the log is
// written.
func WithLogging(p Provider, provider string, events store.EventRepo, log zerolog.Logger) *LoggingProvider {
	return &LoggingProvider{
		inner:    p,
		provider: provider,
		events:   events,
		log:      log,
		now:      time.Now,
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	ev := l.log.Info()
	if err != nil {
		ev = l.log.Warn().Err(err)
	}
	ev.Str("provider", data.Provider).
		Str("model", data.Model).
		Str("purpose", data.Purpose).
		Int("input_tokens", data.InputTokens).
		Int("output_tokens", data.OutputTokens).
		Int64("latency_ms", data.LatencyMs).
		Msg("llm request")

	if l.events != nil {
		// Use a fresh context so a cancelled request is still recorded.
		if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			l.log.Error().Err(logErr).Msg("record llm request")
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
