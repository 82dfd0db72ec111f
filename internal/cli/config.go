package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nhle/zero-hour/internal/model"
)

func (e *env) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the effective configuration to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoState: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(e.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", e.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := model.SaveConfig(e.configPath, e.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", e.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoState: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := e.cfg
			rows := [][2]string{
				{"config file", e.configPath},
				{"variant", c.Variant},
				{"data.path", c.Data.Path},
				{"data.default_business", c.Data.DefaultBusiness},
				{"display.theme", c.Display.Theme},
				{"display.tick_interval_ms", strconv.Itoa(c.Display.TickIntervalMS)},
				{"log.level", c.Log.Level},
				{"log.file", c.Log.File},
				{"mail.from", c.Mail.From},
				{"mail.to", c.Mail.To},
				{"mail.host", c.Mail.Host},
				{"mail.port", c.Mail.Port},
				{"mail.tls", strconv.FormatBool(c.Mail.TLS)},
				{"mail.username", c.Mail.Username},
				{"mail.mailbox", c.Mail.Mailbox},
			}
			for _, r := range rows {
				fmt.Fprintf(cmd.OutOrStdout(), "%-26s %s\n", r[0]+":", r[1])
			}
			return nil
		},
	}

	cmd.AddCommand(initCmd, show)
	return cmd
}
