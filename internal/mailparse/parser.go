package mailparse

import (
	"regexp"
	"strings"

	"maildump-sentiment/internal/models"
)

// Field names of the segment patterns
const (
	FieldSender     = "sender"
	FieldRecipients = "recipients"
	FieldDate       = "date"
	FieldBody       = "body"
)

// Pattern is a named boundary pattern whose first capture group is the segment
type Pattern struct {
	Field string
	Re    *regexp.Regexp
}

// Patterns are applied independently to the same raw message.
// Date assumes the "Date:" header comes before "From:".
var Patterns = []Pattern{
	{Field: FieldSender, Re: regexp.MustCompile(`(?si)From:\s*(.*?)\s*To:`)},
	{Field: FieldRecipients, Re: regexp.MustCompile(`(?si)To:\s*(.*?)\s*Subject:`)},
	{Field: FieldDate, Re: regexp.MustCompile(`(?si)Date:\s*(.*?)\s*From:`)},
	{Field: FieldBody, Re: regexp.MustCompile(`(?im)^X-FileName:.*\r?\n(?:[ \t]*\r?\n)+([\s\S]*)`)},
}

var patternByField = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(Patterns))
	for _, p := range Patterns {
		m[p.Field] = p.Re
	}
	return m
}()

// ExtractSegment returns the whitespace-normalized first capture of re in msg,
// or nil when msg is empty, re does not match, or the segment is blank.
func ExtractSegment(msg string, re *regexp.Regexp) *string {
	if msg == "" {
		return nil
	}

	m := re.FindStringSubmatch(msg)
	if m == nil || len(m) < 2 || m[1] == "" {
		return nil
	}

	extract := NormalizeWhitespace(m[1])
	if extract == "" {
		return nil
	}
	return &extract
}

// NormalizeWhitespace collapses every whitespace run (line breaks and the
// U+001C..U+001F separators included) into a single space and trims both ends
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// ExtractField runs the pattern registered for field against msg
func ExtractField(msg, field string) *string {
	re, ok := patternByField[field]
	if !ok {
		return nil
	}
	return ExtractSegment(msg, re)
}

// ParseCSVList splits a recipient list on commas, honouring double quotes.
// Blank entries are dropped and the rest trimmed; the result is never nil.
// An entry too large to tokenize makes it fall back to a plain comma split.
func ParseCSVList(s *string) []string {
	parts := []string{}
	if s == nil || *s == "" {
		return parts
	}

	fields, err := splitList(*s)
	if err != nil {
		fields = strings.Split(*s, ",")
	}

	for _, p := range fields {
		if p = strings.TrimFunc(p, isSpace); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Extract derives a Record from one raw message
func Extract(raw models.RawRecord) models.Record {
	msg := raw.Message
	return models.Record{
		File:        raw.File,
		RecDate:     ExtractField(msg, FieldDate),
		Sender:      ExtractField(msg, FieldSender),
		Recipients:  ParseCSVList(ExtractField(msg, FieldRecipients)),
		MessageText: ExtractField(msg, FieldBody),
	}
}
