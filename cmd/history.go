package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tasnim.dev/org-bootstrap/internal/ledger"
	"tasnim.dev/org-bootstrap/internal/theme"
	"tasnim.dev/org-bootstrap/internal/utils"
)

func NewHistoryCmd() *cobra.Command {
	var flags commonFlags
	var onlyFailed bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the latest recorded outcome per account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if cfg.LedgerPath == "" {
				return errors.New("no ledger configured (set ledger_path or --ledger)")
			}

			store, err := ledger.Open(cfg.LedgerPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Latest(context.Background())
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), entries, onlyFailed)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&onlyFailed, "failed", false, "Only show accounts whose latest outcome failed")

	return cmd
}

func renderHistory(w io.Writer, entries []ledger.Entry, onlyFailed bool) {
	fmt.Fprintln(w, theme.HeaderStyle.Render("Account bootstrap history"))

	shown := 0
	for _, e := range entries {
		if onlyFailed && !e.Failed() {
			continue
		}
		account := e.AccountID
		if account == "" {
			account = "-"
		}
		line := theme.AccountStyle.Render(account) +
			theme.MutedStyle.Render(utils.TimeOrDash(e.At, utils.DateTimeSec)) + "  " +
			theme.RenderStatus(e.Status) + "  " +
			theme.RenderStatus(e.Relay)
		if e.Failed() {
			line += "  " + theme.StageStyle.Render(e.Stage) + theme.ErrorStyle.Render(e.Error)
		}
		fmt.Fprintln(w, line)
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(w, theme.MutedStyle.Render("no outcomes recorded"))
	}
}
