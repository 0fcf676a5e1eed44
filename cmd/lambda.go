package cmd

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"tasnim.dev/org-bootstrap/internal/bootstrap"
)

func NewLambdaCmd() *cobra.Command {
	var flags commonFlags

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Run as the AWS Lambda handler for account creation events",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(context.Background(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			lambda.Start(lambdaHandler(rt.orch))
			return nil
		},
	}

	flags.bind(cmd)

	return cmd
}

// lambdaHandler never returns an error: failures travel in the outcome.
func lambdaHandler(orch *bootstrap.Orchestrator) func(ctx context.Context, payload json.RawMessage) (bootstrap.Outcome, error) {
	return func(ctx context.Context, payload json.RawMessage) (bootstrap.Outcome, error) {
		return orch.Handle(ctx, payload), nil
	}
}
