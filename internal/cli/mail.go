package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/credential"
	"github.com/nhle/zero-hour/internal/mailer"
)

func (e *env) mailCmd() *cobra.Command {
	var from, to, output string
	var draft bool
	cmd := &cobra.Command{
		Use:   "mail",
		Short: "Compose the business update e-mail",
		Long: `Compose "ZERO HOUR Dashboard - Business Update" with the text summary
inline and the CSV report attached. The message is written to stdout (or
--output) unless --draft files it in the configured IMAP mailbox.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mc := e.cfg.Mail
			if from == "" {
				from = mc.From
			}
			if to == "" {
				to = mc.To
			}
			if from == "" || to == "" {
				return errors.New("mail needs --from and --to (or mail.from and mail.to in the config)")
			}

			now := e.clock.Now()
			msg, err := mailer.ReportMessage(e.mgr.Snapshot(), now, from, to)
			if err != nil {
				return err
			}
			var raw bytes.Buffer
			if err := mailer.Compose(&raw, msg); err != nil {
				return err
			}

			if !draft {
				w, closeFn, err := openOutput(cmd, output)
				if err != nil {
					return err
				}
				_, err = w.Write(raw.Bytes())
				if closeErr := closeFn(); err == nil {
					err = closeErr
				}
				return err
			}

			if mc.Host == "" || mc.Username == "" {
				return errors.New("--draft needs mail.host and mail.username in the config")
			}
			password, err := credential.IMAPPassword(mc.Username)
			if err != nil {
				return fmt.Errorf("no IMAP password: set %s or run 'zerohour credential set': %w", credential.PasswordEnv, err)
			}
			var appender mailer.Appender = mailer.NewIMAPAppender(mailer.IMAPConfig{
				Host:     mc.Host,
				Port:     mc.Port,
				Username: mc.Username,
				Password: password,
				TLS:      mc.TLS,
			})
			if err := appender.Append(cmd.Context(), mc.Mailbox, raw.Bytes(), now); err != nil {
				return err
			}
			e.logger.Info("report draft saved", "mailbox", mc.Mailbox, "to", to)
			fmt.Fprintf(cmd.OutOrStdout(), "Draft saved to %s\n", mc.Mailbox)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&from, "from", "", "sender address (default mail.from)")
	f.StringVar(&to, "to", "", "recipient address (default mail.to)")
	f.StringVarP(&output, "output", "o", "", "write the message to a file")
	f.BoolVar(&draft, "draft", false, "append the message to the IMAP drafts mailbox")
	return cmd
}

func (e *env) credentialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the IMAP password in the system keyring",
	}

	var fromStdin bool
	set := &cobra.Command{
		Use:         "set",
		Short:       "Store the IMAP password for mail.username",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoState: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := e.cfg.Mail.Username
			if user == "" {
				return errors.New("set mail.username in the config first")
			}
			var password string
			var err error
			if fromStdin {
				password, err = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && password == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimRight(password, "\r\n")
			} else {
				password, err = promptSecret("IMAP password for " + user)
				if err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("empty password")
			}
			if err := credential.Set(credential.IMAPKey(user), password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password stored for %s\n", user)
			return nil
		},
	}
	set.Flags().BoolVar(&fromStdin, "password-stdin", false, "read the password from stdin")

	del := &cobra.Command{
		Use:         "delete",
		Short:       "Remove the stored IMAP password",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoState: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := credential.Delete(credential.IMAPKey(e.cfg.Mail.Username)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password removed")
			return nil
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
