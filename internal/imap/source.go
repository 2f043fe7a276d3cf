package imap

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"maildump-sentiment/internal/logging"
	"maildump-sentiment/internal/models"
)

const fileNameHeader = "X-FileName"

// Source reads a mailbox over IMAP and turns each message into a raw record
// shaped like a dump row.
type Source struct {
	client Client
	cfg    models.EmailConfig
}

func NewSource(client Client, cfg models.EmailConfig) *Source {
	return &Source{client: client, cfg: cfg}
}

// Records connects, logs in, lists the mailbox and converts every message.
// A message that cannot be fetched is skipped.
func (s *Source) Records() ([]models.RawRecord, error) {
	locallog := logging.Log.WithField("trace_id", uuid.New().String())

	if err := s.client.Connect(s.cfg.Imap); err != nil {
		locallog.WithError(err).Error("Error connecting to IMAP")
		return nil, err
	}
	defer s.client.Close()

	if err := s.client.Login(s.cfg.Login, s.cfg.Password); err != nil {
		locallog.WithError(err).Error("Error logging in")
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := s.client.SelectMailbox(s.cfg.MailBox); err != nil {
		locallog.WithError(err).Error("Error selecting mailbox")
		return nil, fmt.Errorf("mailbox selection error: %w", err)
	}

	uids, err := s.client.ListUIDs(s.cfg.Since)
	if err != nil {
		locallog.WithError(err).Error("Error listing messages")
		return nil, err
	}
	locallog.Infof("Found %d messages in %s", len(uids), s.cfg.MailBox)

	records := make([]models.RawRecord, 0, len(uids))
	for _, uid := range uids {
		body, err := s.client.FetchMessage(uid)
		if err != nil {
			locallog.WithError(err).WithField("uid", uid).Warn("Error fetching message")
			continue
		}

		rec, err := ToRawRecord(s.cfg.MailBox, uid, body)
		if err != nil {
			locallog.WithError(err).WithField("uid", uid).Warn("Error converting message")
			continue
		}
		records = append(records, rec)
	}

	locallog.Infof("Converted %d messages", len(records))
	return records, nil
}

// FileName is the dump-style identifier of a mailbox message.
func FileName(mailbox string, uid uint32) string {
	return fmt.Sprintf("%s/%d.", mailbox, uid)
}

// ToRawRecord converts an RFC 5322 message into a raw record. The header
// block is rewritten so that X-FileName is its last field, which is where
// the body extraction expects it. A message whose header cannot be parsed
// is kept verbatim.
func ToRawRecord(mailbox string, uid uint32, r io.Reader) (models.RawRecord, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return models.RawRecord{}, fmt.Errorf("read message: %w", err)
	}

	file := FileName(mailbox, uid)
	rec := models.RawRecord{File: models.StringPtr(file)}

	br := bufio.NewReader(bytes.NewReader(raw))
	h, err := textproto.ReadHeader(br)
	if err != nil {
		logging.Log.WithError(err).WithField("uid", uid).Debug("Unparseable header, keeping message as is")
		rec.Message = strings.ToValidUTF8(string(raw), "�")
		return rec, nil
	}

	mh := mail.Header{Header: message.Header{Header: h}}
	if id, err := mh.MessageID(); err == nil && id != "" {
		logging.Log.WithFields(logrus.Fields{"uid": uid, "message_id": id}).Debug("Converting message")
	}

	name := h.Get(fileNameHeader)
	if name == "" {
		name = fmt.Sprintf("%d.", uid)
	}
	h.Del(fileNameHeader)

	var buf bytes.Buffer
	if err := textproto.WriteHeader(&buf, h); err != nil {
		return models.RawRecord{}, fmt.Errorf("write header: %w", err)
	}
	// drop the blank line ending the header block
	buf.Truncate(buf.Len() - 2)
	fmt.Fprintf(&buf, "%s: %s\r\n\r\n", fileNameHeader, name)

	rest, err := io.ReadAll(br)
	if err != nil {
		return models.RawRecord{}, fmt.Errorf("read body: %w", err)
	}
	buf.Write(rest)

	rec.Message = strings.ToValidUTF8(buf.String(), "�")
	return rec, nil
}
