package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tasnim.dev/org-bootstrap/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "org-bootstrap",
		Short: "Bootstrap governance resources into new AWS member accounts",
	}

	rootCmd.AddCommand(cmd.NewHandleCmd())
	rootCmd.AddCommand(cmd.NewReconcileCmd())
	rootCmd.AddCommand(cmd.NewLambdaCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
