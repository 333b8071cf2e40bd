package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const serviceName = "ai-notifier"

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   serviceName,
	Short: "Classify infrastructure events with an LLM and notify the matching topic",
	Long: "Receives one infrastructure event per invocation, asks a hosted language model whether it is a " +
		"security, cost or infra event, and publishes a notification to the topic configured for that category.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Inside the Lambda runtime the bootstrap binary is started without arguments.
		if strings.TrimSpace(os.Getenv("AWS_LAMBDA_RUNTIME_API")) != "" {
			return runLambda(cmd)
		}
		return cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
