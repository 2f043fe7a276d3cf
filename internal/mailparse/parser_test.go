package mailparse

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maildump-sentiment/internal/models"
)

const sampleMessage = "Date: Jan 1\nFrom: alice@x.com\nTo: bob@x.com\nSubject: Hi\nX-FileName: f.txt\n\nHello world"

const enronMessage = "Message-ID: <18782981.1075855378110.JavaMail.evans@thyme>\r\n" +
	"Date: Mon, 14 May 2001 16:39:00 -0700 (PDT)\r\n" +
	"From: phillip.allen@enron.com\r\n" +
	"To: tim.belden@enron.com, \"Lay, Kenneth\" <kenneth.lay@enron.com>,\r\n" +
	"\tjohn.arnold@enron.com\r\n" +
	"Subject: Re: forecast\r\n" +
	"Mime-Version: 1.0\r\n" +
	"X-From: Phillip K Allen\r\n" +
	"X-To: Tim Belden <Tim Belden/Enron@EnronXGate>\r\n" +
	"X-FileName: pallen (Non-Privileged).pst\r\n" +
	"\r\n" +
	"  \r\n" +
	"Here is our forecast.\r\n\r\nThanks,   Phillip\r\n"

func TestExtract_Sample(t *testing.T) {
	file := "allen-p/_sent_mail/1."
	rec := Extract(models.RawRecord{File: &file, Message: sampleMessage})

	require.NotNil(t, rec.File)
	assert.Equal(t, file, *rec.File)
	require.NotNil(t, rec.RecDate)
	assert.Equal(t, "Jan 1", *rec.RecDate)
	require.NotNil(t, rec.Sender)
	assert.Equal(t, "alice@x.com", *rec.Sender)
	assert.Equal(t, []string{"bob@x.com"}, rec.Recipients)
	require.NotNil(t, rec.MessageText)
	assert.Equal(t, "Hello world", *rec.MessageText)
}

func TestExtract_EnronLayout(t *testing.T) {
	rec := Extract(models.RawRecord{Message: enronMessage})

	assert.Nil(t, rec.File)
	require.NotNil(t, rec.RecDate)
	assert.Equal(t, "Mon, 14 May 2001 16:39:00 -0700 (PDT)", *rec.RecDate)
	require.NotNil(t, rec.Sender)
	assert.Equal(t, "phillip.allen@enron.com", *rec.Sender)
	assert.Equal(t, []string{
		"tim.belden@enron.com",
		"Lay, Kenneth <kenneth.lay@enron.com>",
		"john.arnold@enron.com",
	}, rec.Recipients)
	require.NotNil(t, rec.MessageText)
	assert.Equal(t, "Here is our forecast. Thanks, Phillip", *rec.MessageText)
}

func TestExtract_MissingLabels(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantDate   bool
		wantSender bool
		wantRecip  bool
		wantBody   bool
	}{
		{
			name:    "Empty message",
			message: "",
		},
		{
			name:    "Plain text without headers",
			message: "just some words without any header labels",
		},
		{
			name:       "No Date header",
			message:    "From: a@x.com\nTo: b@x.com\nSubject: s\nX-FileName: f\n\nbody",
			wantSender: true,
			wantRecip:  true,
			wantBody:   true,
		},
		{
			name:     "No Subject header",
			message:  "Date: d\nFrom: a@x.com\nCc: b@x.com\nX-FileName: f\n\nbody",
			wantDate: true,
			wantBody: true,
		},
		{
			name:       "X-FileName not followed by a blank line",
			message:    "Date: d\nFrom: a@x.com\nTo: b@x.com\nSubject: s\nX-FileName: f\nbody",
			wantDate:   true,
			wantSender: true,
			wantRecip:  true,
		},
		{
			name:       "Date after From",
			message:    "From: a@x.com\nTo: b@x.com\nSubject: s\nDate: d\nX-FileName: f\n\nbody",
			wantSender: true,
			wantRecip:  true,
			wantBody:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract(models.RawRecord{Message: tt.message})
			assert.Equal(t, tt.wantDate, rec.RecDate != nil, "rec_date")
			assert.Equal(t, tt.wantSender, rec.Sender != nil, "sender")
			assert.Equal(t, tt.wantRecip, len(rec.Recipients) > 0, "recipients")
			assert.NotNil(t, rec.Recipients)
			assert.Equal(t, tt.wantBody, rec.MessageText != nil, "message_text")
		})
	}
}

func TestExtractSegment(t *testing.T) {
	re := regexp.MustCompile(`(?si)Start:\s*(.*?)\s*End:`)

	tests := []struct {
		name     string
		msg      string
		expected *string
	}{
		{
			name:     "Empty blob",
			msg:      "",
			expected: nil,
		},
		{
			name:     "No match",
			msg:      "nothing here",
			expected: nil,
		},
		{
			name:     "Empty segment",
			msg:      "Start:End:",
			expected: nil,
		},
		{
			name:     "Whitespace-only segment",
			msg:      "Start: \r\n \t End:",
			expected: nil,
		},
		{
			name:     "Line breaks collapse to one space",
			msg:      "Start: one\r\n\r\ntwo\nthree End:",
			expected: models.StringPtr("one two three"),
		},
		{
			name:     "Case-insensitive labels",
			msg:      "start: value end:",
			expected: models.StringPtr("value"),
		},
		{
			name:     "First match wins",
			msg:      "Start: a End: Start: b End:",
			expected: models.StringPtr("a"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSegment(tt.msg, re)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeWhitespace_Idempotent(t *testing.T) {
	inputs := []string{
		"  a \r\n b\t\tc  ",
		"already normal",
		"\n\n",
		"x  y",
	}

	for _, in := range inputs {
		once := NormalizeWhitespace(in)
		assert.Equal(t, once, NormalizeWhitespace(once), "input %q", in)
	}
}

func TestNormalizeWhitespace_ASCIISeparators(t *testing.T) {
	assert.Equal(t, "a b c d e", NormalizeWhitespace("\x1ca\x1db\x1e c\x1fd\u00a0e "))
}

func TestParseCSVList_OversizedEntryFallsBack(t *testing.T) {
	long := strings.Repeat("x", listFieldLimit+1)
	got := ParseCSVList(models.StringPtr(long + `, "y, z"`))
	assert.Equal(t, []string{long, `"y`, `z"`}, got)
}

func TestExtract_QuotedDisplayNameRecipient(t *testing.T) {
	msg := "Date: Jan 1\nFrom: alice@x.com\nTo: \"Smith, John\" <john@x.com>, bob@x.com\nSubject: Hi\n"
	rec := Extract(models.RawRecord{Message: msg})
	assert.Equal(t, []string{"Smith, John <john@x.com>", "bob@x.com"}, rec.Recipients)
}

func TestExtractField_UnknownField(t *testing.T) {
	assert.Nil(t, ExtractField(sampleMessage, "subject"))
}

func TestParseCSVList(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected []string
	}{
		{
			name:     "Nil input",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "Empty input",
			input:    models.StringPtr(""),
			expected: []string{},
		},
		{
			name:     "Quoted comma preserved",
			input:    models.StringPtr(`a, "b, c", d`),
			expected: []string{"a", "b, c", "d"},
		},
		{
			name:     "Whitespace-only entries dropped",
			input:    models.StringPtr(" , , "),
			expected: []string{},
		},
		{
			name:     "Single address",
			input:    models.StringPtr("bob@x.com"),
			expected: []string{"bob@x.com"},
		},
		{
			name:     "Trailing comma",
			input:    models.StringPtr("a@x.com, b@x.com,"),
			expected: []string{"a@x.com", "b@x.com"},
		},
		{
			name:     "Quoted display name before an address",
			input:    models.StringPtr(`"Smith, John" <j@x.com>, bob@x.com`),
			expected: []string{"Smith, John <j@x.com>", "bob@x.com"},
		},
		{
			name:     "Doubled quote inside quotes",
			input:    models.StringPtr(`"a ""b"" c", d`),
			expected: []string{`a "b" c`, "d"},
		},
		{
			name:     "Quote inside an unquoted entry is literal",
			input:    models.StringPtr(`ab"c, d`),
			expected: []string{`ab"c`, "d"},
		},
		{
			name:     "Unterminated quote runs to the end",
			input:    models.StringPtr(`"a, b`),
			expected: []string{"a, b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSVList(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.expected, got)
		})
	}
}
