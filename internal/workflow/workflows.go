package workflow

import (
	"context"
	"log/slog"
	"strings"

	"toneterm/internal/model"
)

const (
	SentimentFallbackMessage = "Error analyzing sentiment"
	EmailFallbackMessage     = "Error generating email"
)

type Analyzer interface {
	Analyze(ctx context.Context, text string) (model.SentimentResult, error)
}

type Rewriter interface {
	Rewrite(ctx context.Context, email string, tone model.Tone) (model.EmailRewriteResult, error)
}

type SentimentWorkflow struct {
	*Controller[model.SentimentResult]
}

// NewSentiment sends the trimmed draft to the analyzer. A failure shows the
// fallback message with a neutral score.
func NewSentiment(a Analyzer, logger *slog.Logger) *SentimentWorkflow {
	build := func(draft string) Request[model.SentimentResult] {
		text := strings.TrimSpace(draft)
		return func(ctx context.Context) (model.SentimentResult, error) {
			return a.Analyze(ctx, text)
		}
	}
	fallback := Fallback[model.SentimentResult]{
		Message: SentimentFallbackMessage,
		Result:  model.SentimentResult{Message: SentimentFallbackMessage, Score: 0},
	}
	return &SentimentWorkflow{NewController(model.WorkflowSentiment, build, fallback, logger)}
}

type EmailRewriteWorkflow struct {
	*Controller[model.EmailRewriteResult]
	tone model.Tone
}

// NewEmailRewrite sends the draft as typed along with the tone selected at
// submit time. The tone is kept across submissions.
func NewEmailRewrite(r Rewriter, logger *slog.Logger) *EmailRewriteWorkflow {
	w := &EmailRewriteWorkflow{tone: model.WorkProfessional}
	build := func(draft string) Request[model.EmailRewriteResult] {
		tone := w.tone
		return func(ctx context.Context) (model.EmailRewriteResult, error) {
			return r.Rewrite(ctx, draft, tone)
		}
	}
	fallback := Fallback[model.EmailRewriteResult]{
		Message: EmailFallbackMessage,
		Result:  model.EmailRewriteResult{Email: EmailFallbackMessage},
	}
	w.Controller = NewController(model.WorkflowEmail, build, fallback, logger)
	return w
}

func (w *EmailRewriteWorkflow) Tone() model.Tone { return w.tone }

// UpdateTone selects a tone. Out-of-range values are ignored.
func (w *EmailRewriteWorkflow) UpdateTone(t model.Tone) {
	if t.Valid() {
		w.tone = t
	}
}
