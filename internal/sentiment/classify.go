// Package sentiment maps an analyzer score onto a display category.
package sentiment

import (
	"encoding/json"
	"math"

	"github.com/charmbracelet/lipgloss"

	"toneterm/internal/model"
)

type Category int

const (
	Neutral Category = iota
	Positive
	Negative
)

// Scores strictly beyond these bounds leave Neutral. The bounds themselves
// are Neutral.
const (
	PositiveThreshold = 0.3
	NegativeThreshold = -0.3
)

// Classify buckets a score. NaN is Neutral.
func Classify(score float64) Category {
	switch {
	case score > PositiveThreshold:
		return Positive
	case score < NegativeThreshold:
		return Negative
	default:
		return Neutral
	}
}

// ClassifyValue classifies a score of unknown wire type. Strings are parsed
// as numerals; anything that cannot be read as a number counts as 0.
func ClassifyValue(v any) Category {
	return Classify(Coerce(v))
}

// Coerce converts a loosely typed score to a float64.
func Coerce(v any) float64 {
	var f float64
	switch x := v.(type) {
	case model.Score:
		f = float64(x)
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		f = model.ParseScore(x.String())
	case string:
		f = model.ParseScore(x)
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return f
}

var categoryNames = map[Category]string{
	Positive: "Positive",
	Neutral:  "Neutral",
	Negative: "Negative",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[Neutral]
}

var (
	neutralColor   = lipgloss.Color("245")
	categoryColors = map[Category]lipgloss.Color{
		Positive: lipgloss.Color("42"),
		Neutral:  neutralColor,
		Negative: lipgloss.Color("196"),
	}
)

// Color returns the display color for c. Unknown categories get the neutral
// color so every state renders.
func (c Category) Color() lipgloss.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return neutralColor
}

// Style returns a bold lipgloss style in the category color.
func (c Category) Style() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c.Color())
}
