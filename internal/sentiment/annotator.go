package sentiment

import (
	"fmt"
	"math"
	"strings"

	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/models"
	"maildump-sentiment/internal/table"

	"github.com/google/uuid"
)

// Scorer turns a non-blank text into a sentiment score
type Scorer interface {
	Score(text string) (*float64, error)
}

// Annotator appends polarity and compound scores of a body column to a table
type Annotator struct {
	polarity   Scorer
	compound   Scorer
	bodyColumn string
}

// NewAnnotator creates an Annotator reading message bodies from models.ColMessageBody
func NewAnnotator(polarity, compound Scorer) *Annotator {
	return &Annotator{
		polarity:   polarity,
		compound:   compound,
		bodyColumn: models.ColMessageBody,
	}
}

// WithBodyColumn changes the column holding message bodies
func (a *Annotator) WithBodyColumn(name string) *Annotator {
	if name != "" {
		a.bodyColumn = name
	}
	return a
}

// Annotate adds both score columns to t
func (a *Annotator) Annotate(t *table.Table) error {
	locallog := logging.Log.WithField("trace_id", uuid.New().String())
	locallog.Infof("Annotating %d rows from column %s", t.Len(), a.bodyColumn)

	if err := a.SetPolarityScores(t); err != nil {
		return err
	}
	if err := a.SetCompoundScores(t); err != nil {
		return err
	}

	locallog.Infof("Added columns %s and %s", models.ColTBPolarity, models.ColVaderComp)
	return nil
}

// SetPolarityScores writes the polarity of every body into models.ColTBPolarity
func (a *Annotator) SetPolarityScores(t *table.Table) error {
	return a.setScores(t, models.ColTBPolarity, a.polarity)
}

// SetCompoundScores writes the compound score of every body into models.ColVaderComp
func (a *Annotator) SetCompoundScores(t *table.Table) error {
	return a.setScores(t, models.ColVaderComp, a.compound)
}

func (a *Annotator) setScores(t *table.Table, column string, scorer Scorer) error {
	bodies, err := t.Column(a.bodyColumn)
	if err != nil {
		return err
	}

	scores := make([]any, len(bodies))
	for i, body := range bodies {
		score, err := ScoreValue(scorer, body)
		if err != nil {
			return fmt.Errorf("score row %d for %s: %w", i, column, err)
		}
		scores[i] = score
	}

	return t.SetColumn(column, scores)
}

// ScoreValue scores a table cell. Missing, NaN, empty and all-whitespace
// values are absent and never reach the scorer.
func ScoreValue(scorer Scorer, value any) (*float64, error) {
	text, ok := cellText(value)
	if !ok || strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return scorer.Score(text)
}

func cellText(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case float64:
		if math.IsNaN(v) {
			return "", false
		}
		return fmt.Sprint(v), true
	default:
		return fmt.Sprint(v), true
	}
}
