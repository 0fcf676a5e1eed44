package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tasnim.dev/org-bootstrap/internal/bootstrap"
	"tasnim.dev/org-bootstrap/internal/theme"
)

func NewReconcileCmd() *cobra.Command {
	var flags commonFlags
	var accounts []string
	var failed bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Re-run the bootstrap for known accounts",
		Long: "Re-runs every provisioning step for the given accounts. Steps tolerate existing " +
			"resources, so this resumes accounts a previous run left partially provisioned.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(accounts) == 0 && !failed {
				return errors.New("nothing to reconcile: pass --account or --failed")
			}

			ctx := context.Background()
			rt, err := flags.setup(ctx, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if failed {
				if rt.store == nil {
					return errors.New("--failed needs a ledger (set ledger_path or --ledger)")
				}
				ids, err := rt.store.Failed(ctx)
				if err != nil {
					return err
				}
				accounts = append(accounts, ids...)
			}

			outcomes := reconcileAll(ctx, rt.orch, accounts)
			var failures int
			for _, out := range outcomes {
				printOutcome(cmd.OutOrStdout(), out)
				if !out.Succeeded() {
					failures++
				}
			}
			if failures > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d of %d accounts failed", failures, len(outcomes))
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringSliceVarP(&accounts, "account", "a", nil, "Account ID to reconcile (repeatable)")
	cmd.Flags().BoolVar(&failed, "failed", false, "Reconcile every account whose last recorded outcome failed")

	return cmd
}

// reconcileAll runs accounts one after another, skipping duplicates.
func reconcileAll(ctx context.Context, orch *bootstrap.Orchestrator, accounts []string) []bootstrap.Outcome {
	seen := make(map[string]bool, len(accounts))
	var outcomes []bootstrap.Outcome
	for _, id := range accounts {
		if seen[id] {
			continue
		}
		seen[id] = true
		outcomes = append(outcomes, orch.Reconcile(ctx, id))
	}
	return outcomes
}

func printOutcome(w io.Writer, out bootstrap.Outcome) {
	line := theme.AccountStyle.Render(out.AccountID) + theme.RenderStatus(string(out.Status))
	if !out.Succeeded() {
		line += "  " + theme.StageStyle.Render(string(out.Stage)) + theme.ErrorStyle.Render(out.Error)
	}
	fmt.Fprintln(w, line)
}
