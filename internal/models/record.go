package models

// RawRecord is one row of an email dump: a file identifier and the raw
// message blob (headers and body as a single string).
type RawRecord struct {
	File    *string
	Message string
}

// Record holds the fields extracted from a single raw message.
// A nil pointer means the field's pattern did not match; it is never
// replaced by an empty string.
type Record struct {
	File        *string
	RecDate     *string
	Sender      *string
	Recipients  []string
	MessageText *string
}

// Column names of the extracted table, in output order.
const (
	ColFile        = "file"
	ColRecDate     = "rec_date"
	ColSender      = "sender"
	ColRecipients  = "recipients"
	ColMessageText = "message_text"
	ColMessageBody = "message_body"
	ColTBPolarity  = "tb_polarity"
	ColVaderComp   = "vader_compound"
)

// RecordColumns is the fixed column order of an extracted table.
var RecordColumns = []string{ColFile, ColRecDate, ColSender, ColRecipients, ColMessageText}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
