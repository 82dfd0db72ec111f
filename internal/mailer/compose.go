// Package mailer turns dashboard reports into e-mail messages and files
// them in an IMAP mailbox (normally Drafts) for the user to send.
package mailer

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"

	"github.com/nhle/zero-hour/internal/model"
	"github.com/nhle/zero-hour/internal/report"
)

// ReportSubject is the subject line of mailed reports.
const ReportSubject = "ZERO HOUR Dashboard - Business Update"

// Attachment is a file attached to a Message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a plain-text e-mail with optional attachments.
type Message struct {
	From        string
	To          string
	Subject     string
	Date        time.Time
	Body        string
	Attachments []Attachment
}

// ReportMessage builds the business update mail for st: the text summary
// inline and the CSV report attached.
func ReportMessage(st model.AppState, generatedAt time.Time, from, to string) (Message, error) {
	var csvBuf bytes.Buffer
	if err := report.WriteCSV(&csvBuf, report.Build(st, generatedAt)); err != nil {
		return Message{}, err
	}

	return Message{
		From:    from,
		To:      to,
		Subject: ReportSubject,
		Date:    generatedAt,
		Body:    report.Text(st, generatedAt),
		Attachments: []Attachment{{
			Filename:    report.FileName("csv", ""),
			ContentType: "text/csv",
			Data:        csvBuf.Bytes(),
		}},
	}, nil
}

// Compose writes msg to w in RFC 5322 format.
func Compose(w io.Writer, msg Message) error {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return fmt.Errorf("parsing from address %q: %w", msg.From, err)
	}
	to, err := mail.ParseAddress(msg.To)
	if err != nil {
		return fmt.Errorf("parsing to address %q: %w", msg.To, err)
	}

	var h mail.Header
	h.SetDate(msg.Date)
	h.SetAddressList("From", []*mail.Address{from})
	h.SetAddressList("To", []*mail.Address{to})
	h.SetSubject(msg.Subject)
	h.SetMessageID(uuid.New().String() + "@zerohour")

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating message writer: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating inline part: %w", err)
	}
	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	pw, err := iw.CreatePart(th)
	if err != nil {
		return fmt.Errorf("creating text part: %w", err)
	}
	if _, err := io.WriteString(pw, msg.Body); err != nil {
		return fmt.Errorf("writing text part: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("closing text part: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("closing inline part: %w", err)
	}

	for _, a := range msg.Attachments {
		var ah mail.AttachmentHeader
		ah.SetContentType(a.ContentType, nil)
		ah.SetFilename(a.Filename)
		aw, err := mw.CreateAttachment(ah)
		if err != nil {
			return fmt.Errorf("creating attachment %s: %w", a.Filename, err)
		}
		if _, err := aw.Write(a.Data); err != nil {
			return fmt.Errorf("writing attachment %s: %w", a.Filename, err)
		}
		if err := aw.Close(); err != nil {
			return fmt.Errorf("closing attachment %s: %w", a.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}
	return nil
}
