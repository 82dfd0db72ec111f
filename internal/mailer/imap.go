package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPConfig holds the connection settings of the drafts mailbox.
type IMAPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	TLS      bool
}

// Appender files a raw message in a mailbox.
type Appender interface {
	Append(ctx context.Context, mailbox string, raw []byte, at time.Time) error
}

// IMAPAppender appends messages over IMAP.
type IMAPAppender struct {
	cfg IMAPConfig
}

// NewIMAPAppender creates an appender for cfg.
func NewIMAPAppender(cfg IMAPConfig) *IMAPAppender {
	return &IMAPAppender{cfg: cfg}
}

// connect establishes a connection to the IMAP server and authenticates.
// The caller must log out of the returned client.
func (a *IMAPAppender) connect() (*imapclient.Client, error) {
	addr := a.cfg.Host + ":" + a.cfg.Port

	var client *imapclient.Client
	var err error

	if a.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(a.cfg.Username, a.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("authentication failed for %s: %w", a.cfg.Username, err)
	}

	return client, nil
}

// Append stores raw in mailbox flagged as a draft.
func (a *IMAPAppender) Append(ctx context.Context, mailbox string, raw []byte, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := a.connect()
	if err != nil {
		return err
	}
	defer func() { _ = client.Logout().Wait() }()

	cmd := client.Append(mailbox, int64(len(raw)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagDraft},
		Time:  at,
	})
	if _, err := cmd.Write(raw); err != nil {
		return fmt.Errorf("writing message to %s: %w", mailbox, err)
	}
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("finishing append to %s: %w", mailbox, err)
	}
	if _, err := cmd.Wait(); err != nil {
		return fmt.Errorf("appending to %s: %w", mailbox, err)
	}
	return nil
}
