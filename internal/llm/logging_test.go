package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/disha/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func (r *recordingEvents) QueryLLMRequests(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func steppingClock(step time.Duration) func() time.Time {
	t := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	events := &recordingEvents{}
	var buf bytes.Buffer
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 30, OutputTokens: 12, TotalTokens: 42},
	})
	p := WithLogging(mock, ProviderMock, events, zerolog.New(&buf))
	p.now = steppingClock(250 * time.Millisecond)

	ctx := WithPurpose(context.Background(), "career-advice")
	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	got := events.events[0]
	assert.Equal(t, "mock", got.Provider)
	assert.Equal(t, "mock", got.Model)
	assert.Equal(t, "career-advice", got.Purpose)
	assert.Equal(t, 30, got.InputTokens)
	assert.Equal(t, 12, got.OutputTokens)
	assert.EqualValues(t, 250, got.LatencyMs)
	assert.True(t, got.Success)
	assert.Empty(t, got.ErrorMessage)

	assert.Contains(t, buf.String(), `"purpose":"career-advice"`)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	events := &recordingEvents{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("dns")}})
	p := WithLogging(mock, ProviderAnthropic, events, zerolog.Nop())

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, events.events, 1)
	assert.False(t, events.events[0].Success)
	assert.Contains(t, events.events[0].ErrorMessage, "dns")
	assert.Equal(t, "unknown", events.events[0].Purpose)
}

func TestLoggingProvider_StoreFailureDoesNotFailRequest(t *testing.T) {
	events := &recordingEvents{err: errors.New("disk full")}
	var buf bytes.Buffer
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, events, zerolog.New(&buf))

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "disk full")
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, zerolog.Nop())
	_, err := p.Generate(context.Background(), Request{})
	assert.NoError(t, err)
}
