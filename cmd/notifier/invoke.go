package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/api"
)

var invokeEvent string

func init() {
	invokeCmd.Flags().StringVarP(&invokeEvent, "event", "e", "-", "Path to an event JSON file, or - for stdin")
	rootCmd.AddCommand(invokeCmd)
}

var invokeCmd = &cobra.Command{
	Use:   "invoke",
	Short: "Process a single event from a file and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := readEvent(cmd.InOrStdin(), invokeEvent)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.handler.Handle(cmd.Context(), event)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func readEvent(stdin io.Reader, path string) (api.Event, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read event: %w", err)
		}
		defer f.Close()
		r = f
	}

	event, err := api.DecodeEvent(r)
	if err != nil {
		return nil, fmt.Errorf("parse event: %w", err)
	}
	return event, nil
}
