package sentiment

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v2"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// negationFactor is applied to a scored word preceded by a negation
const negationFactor = -0.5

// Lexicon maps words to polarity, plus the modifiers acting on them
type Lexicon struct {
	Negations    []string           `yaml:"negations"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Words        map[string]float64 `yaml:"words"`

	negations map[string]struct{}
}

// ParseLexicon decodes a YAML lexicon
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("parse lexicon: no words")
	}

	lex.negations = make(map[string]struct{}, len(lex.Negations))
	for _, n := range lex.Negations {
		lex.negations[strings.ToLower(n)] = struct{}{}
	}
	return &lex, nil
}

// LoadLexicon reads a YAML lexicon file
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLexicon(data)
}

// DefaultLexicon returns the embedded lexicon
func DefaultLexicon() *Lexicon {
	lex, err := ParseLexicon(defaultLexicon)
	if err != nil {
		panic(err)
	}
	return lex
}

func (l *Lexicon) isNegation(tok string) bool {
	if _, ok := l.negations[tok]; ok {
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

// PolarityScorer averages the polarity of the lexicon words found in a text.
// An intensifier scales the next scored word, a negation multiplies it by
// -0.5; both reset at sentence punctuation. A text without lexicon words scores 0.
type PolarityScorer struct {
	lexicon *Lexicon
}

// NewPolarityScorer creates a scorer over lex, or the embedded lexicon when nil
func NewPolarityScorer(lex *Lexicon) *PolarityScorer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &PolarityScorer{lexicon: lex}
}

// Score implements Scorer
func (p *PolarityScorer) Score(text string) (*float64, error) {
	polarity := p.Polarity(text)
	return &polarity, nil
}

// Polarity returns the mean assessment of text in [-1, 1]
func (p *PolarityScorer) Polarity(text string) float64 {
	var sum float64
	var n int

	negate := false
	intensity := 1.0
	for _, tok := range tokenize(text) {
		if tok == "." {
			negate, intensity = false, 1.0
			continue
		}
		if p.lexicon.isNegation(tok) {
			negate = true
			continue
		}
		if f, ok := p.lexicon.Intensifiers[tok]; ok {
			intensity *= f
			continue
		}

		v, ok := p.lexicon.Words[tok]
		if !ok {
			continue
		}
		v *= intensity
		if negate {
			v *= negationFactor
		}
		sum += clamp(v)
		n++
		negate, intensity = false, 1.0
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// tokenize lowercases letter/number runs (apostrophes kept inside words)
// and emits "." for sentence punctuation
func tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.Trim(current.String(), "'"))
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(unicode.ToLower(r))
		case (r == '\'' || r == '’') && current.Len() > 0:
			current.WriteRune('\'')
		case r == '.' || r == '!' || r == '?' || r == ';':
			flush()
			tokens = append(tokens, ".")
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
