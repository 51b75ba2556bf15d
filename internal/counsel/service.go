package counsel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/abhisek/disha/internal/llm"
)

// Purpose tags counsellor requests in the llm_requests log.
const Purpose = "career-advice"

// Service produces Advice. Without a provider, or when the provider
// fails, it answers from built-in rules.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      zerolog.Logger
}

// NewService accepts a nil provider.
func NewService(provider llm.Provider, cfg Config, log zerolog.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, log: log.With().Str("component", "counsel").Logger()}
}

// Online reports whether a model is configured.
func (s *Service) Online() bool {
	return s.provider != nil
}

// Advise returns advice for in. It fails only when ctx is cancelled.
func (s *Service) Advise(ctx context.Context, in Input) (Advice, error) {
	if len(in.Recent) > s.cfg.RecentLimit && s.cfg.RecentLimit >= 0 {
		in.Recent = in.Recent[:s.cfg.RecentLimit]
	}
	if s.provider == nil {
		return Offline(in), nil
	}

	advice, err := s.generate(ctx, in)
	if err == nil {
		return advice, nil
	}
	if errors.Is(err, context.Canceled) {
		return Advice{}, err
	}
	s.log.Warn().Err(err).Str("quiz", in.Result.QuizID).Msg("falling back to offline advice")
	return Offline(in), nil
}

func (s *Service) generate(ctx context.Context, in Input) (Advice, error) {
	resp, err := s.provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      AdviceSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Advice{}, fmt.Errorf("career advice: %w", err)
	}

	var out adviceOutput
	if err := llm.Decode(resp, &out); err != nil {
		return Advice{}, fmt.Errorf("parse career advice: %w", err)
	}
	if strings.TrimSpace(out.Summary) == "" {
		return Advice{}, fmt.Errorf("career advice: empty summary")
	}
	return Advice{
		Summary:   out.Summary,
		Strengths: out.Strengths,
		NextSteps: out.NextSteps,
		Streams:   out.Streams,
		Source:    SourceAI,
	}, nil
}
