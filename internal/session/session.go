// Package session holds the state of one interactive run: both workflows,
// side by side, sharing nothing but the remote service.
package session

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"toneterm/internal/workflow"
)

// Service is the remote analysis service. *analysis.Client satisfies it.
type Service interface {
	workflow.Analyzer
	workflow.Rewriter
}

type Session struct {
	ID        uuid.UUID
	Sentiment *workflow.SentimentWorkflow
	Email     *workflow.EmailRewriteWorkflow
}

func New(svc Service, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	id := uuid.New()
	logger = logger.With("session", id.String())
	return &Session{
		ID:        id,
		Sentiment: workflow.NewSentiment(svc, logger),
		Email:     workflow.NewEmailRewrite(svc, logger),
	}
}

// Reset remounts both workflows. Requests still in flight are discarded
// when they settle. The email tone is kept.
func (s *Session) Reset() {
	s.Sentiment.Reset()
	s.Email.Reset()
}
