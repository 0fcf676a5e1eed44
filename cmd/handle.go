package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tasnim.dev/org-bootstrap/internal/bootstrap"
)

func NewHandleCmd() *cobra.Command {
	var flags commonFlags
	var eventPath string

	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Bootstrap the account named in an account creation event",
		Long: "Reads an EventBridge account creation event (from --event or stdin), " +
			"provisions the relay and tagging resources in the new account and prints the outcome as JSON.",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readEvent(cmd.InOrStdin(), eventPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			rt, err := flags.setup(ctx, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := rt.orch.Handle(ctx, payload)
			if err := writeOutcome(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !out.Succeeded() {
				cmd.SilenceUsage = true
				return fmt.Errorf("bootstrap failed at %s", out.Stage)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&eventPath, "event", "e", "-", "Event JSON file, or - for stdin")

	return cmd
}

func readEvent(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading event from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event: %w", err)
	}
	return data, nil
}

func writeOutcome(w io.Writer, out bootstrap.Outcome) error {
	b, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
