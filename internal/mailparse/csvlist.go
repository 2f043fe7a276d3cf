package mailparse

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// listFieldLimit is the longest accepted list entry, in characters
const listFieldLimit = 128 << 10

var errListFieldTooLarge = errors.New("list entry larger than field limit")

// splitList tokenizes one comma-separated record leniently. A double quote
// opens quoting only at the start of an entry (after leading blanks), ""
// inside quotes is a literal quote, and text after a closing quote is kept
// in the same entry, so `"Smith, John" <j@x.com>` is one entry. An
// unterminated quote runs to the end of the input.
func splitList(s string) ([]string, error) {
	const (
		startField = iota
		inField
		inQuoted
		quoteInQuoted
	)

	var (
		fields []string
		field  strings.Builder
		state  = startField
	)

	save := func() error {
		if utf8.RuneCountInString(field.String()) > listFieldLimit {
			return errListFieldTooLarge
		}
		fields = append(fields, field.String())
		field.Reset()
		return nil
	}

	for _, c := range s {
		switch state {
		case startField:
			switch c {
			case ' ', '\t':
			case '"':
				state = inQuoted
			case ',':
				if err := save(); err != nil {
					return nil, err
				}
			default:
				field.WriteRune(c)
				state = inField
			}
		case inField:
			if c == ',' {
				if err := save(); err != nil {
					return nil, err
				}
				state = startField
			} else {
				field.WriteRune(c)
			}
		case inQuoted:
			if c == '"' {
				state = quoteInQuoted
			} else {
				field.WriteRune(c)
			}
		case quoteInQuoted:
			switch c {
			case '"':
				field.WriteRune(c)
				state = inQuoted
			case ',':
				if err := save(); err != nil {
					return nil, err
				}
				state = startField
			default:
				field.WriteRune(c)
				state = inField
			}
		}
	}

	if err := save(); err != nil {
		return nil, err
	}
	return fields, nil
}

// isSpace matches unicode.IsSpace plus the ASCII separators U+001C..U+001F
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
