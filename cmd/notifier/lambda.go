package main

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
)

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve invocations from the AWS Lambda runtime API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLambda(cmd)
	},
}

func runLambda(cmd *cobra.Command) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	// StartWithOptions only returns by exiting the process, so clients are
	// released from the SIGTERM hook.
	lambda.StartWithOptions(func(ctx context.Context, payload json.RawMessage) (api.Response, error) {
		event, err := api.DecodeEvent(bytes.NewReader(payload))
		if err != nil {
			return api.Response{}, err
		}
		return a.handler.Handle(ctx, event)
	}, lambda.WithEnableSIGTERM(a.Close))
	return nil
}
