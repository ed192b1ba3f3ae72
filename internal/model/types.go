package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Score is a sentiment score, roughly in [-1, 1]. The analyzer has been seen
// sending it both as a JSON number and as a quoted numeral, so decoding
// accepts either. Anything unparseable decodes to 0.
type Score float64

func (s *Score) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = 0
		return nil
	}
	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*s = Score(ParseScore(raw))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	*s = Score(f)
	return nil
}

// ParseScore converts a string-encoded numeral to a float. Blank or
// malformed input yields 0.
func ParseScore(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// SentimentResult is the decoded body of a sentiment analysis response.
type SentimentResult struct {
	Message string `json:"message"`
	Score   Score  `json:"score"`
}

// EmailRewriteResult is the decoded body of an email rewrite response.
type EmailRewriteResult struct {
	Email string `json:"email"`
}

// Tone is the rewriting style for an email draft.
type Tone int

const (
	WorkProfessional Tone = iota // default
	CasualAndFriendly
	Apologetic
)

var toneLabels = [...]string{
	WorkProfessional:  "Work Professional",
	CasualAndFriendly: "Casual and Friendly",
	Apologetic:        "Apologetic",
}

// Tones lists every tone in selector order.
func Tones() []Tone { return []Tone{WorkProfessional, CasualAndFriendly, Apologetic} }

// String returns the exact label sent on the wire.
func (t Tone) String() string {
	if t < 0 || int(t) >= len(toneLabels) {
		return toneLabels[WorkProfessional]
	}
	return toneLabels[t]
}

func (t Tone) Valid() bool { return t >= 0 && int(t) < len(toneLabels) }

func (t Tone) Next() Tone { return Tone((int(t) + 1) % len(toneLabels)) }

func (t Tone) Prev() Tone { return Tone((int(t) + len(toneLabels) - 1) % len(toneLabels)) }

// ParseTone maps a wire label back to a Tone.
func ParseTone(label string) (Tone, error) {
	for i, l := range toneLabels {
		if l == label {
			return Tone(i), nil
		}
	}
	return WorkProfessional, fmt.Errorf("unknown tone %q", label)
}

func (t Tone) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tone) UnmarshalJSON(b []byte) error {
	var label string
	if err := json.Unmarshal(b, &label); err != nil {
		return err
	}
	v, err := ParseTone(label)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Workflow names used in logs and the history table.
const (
	WorkflowSentiment = "sentiment"
	WorkflowEmail     = "email"
)

// HistoryEntry records one settled submission for the session history log.
type HistoryEntry struct {
	ID        string
	SessionID string
	Workflow  string // WorkflowSentiment or WorkflowEmail
	Input     string // preview of what was sent
	Output    string // result message or rewritten email
	Score     float64
	Tone      string // empty for sentiment
	Failed    bool
	SettledAt time.Time
}
