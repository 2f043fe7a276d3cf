package sentiment

import (
	"github.com/jonreiter/govader"
)

// CompoundScorer returns the VADER compound score of a text
type CompoundScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewCompoundScorer creates a scorer. With reuse false a fresh analyzer is
// built for every text.
func NewCompoundScorer(reuse bool) *CompoundScorer {
	c := &CompoundScorer{}
	if reuse {
		c.analyzer = govader.NewSentimentIntensityAnalyzer()
	}
	return c
}

// Score implements Scorer
func (c *CompoundScorer) Score(text string) (*float64, error) {
	analyzer := c.analyzer
	if analyzer == nil {
		analyzer = govader.NewSentimentIntensityAnalyzer()
	}
	compound := analyzer.PolarityScores(text).Compound
	return &compound, nil
}
