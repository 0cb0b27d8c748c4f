// cmd/logctl is the CLI entry-point built with Cobra.
//
// Usage:
//
//	logctl append "hello world"        --server http://localhost:8000
//	logctl append "hello world" -w 1   --server http://localhost:8000
//	logctl list                        --server http://localhost:8000
//	logctl health                      --server http://localhost:8000
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppriyankuu/replicated-log/internal/client"
)

var (
	serverAddr string
	timeout    time.Duration
	writeConc  int
)

func main() {
	root := &cobra.Command{
		Use:   "logctl",
		Short: "CLI client for the replicated log",
	}

	root.PersistentFlags().StringVarP(&serverAddr, "server", "s",
		"http://localhost:8000", "node address")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second,
		"HTTP request timeout")

	root.AddCommand(appendCmd(), listCmd(), healthCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func appendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <message>",
		Short: "Append a message to the log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			result, err := c.Append(ctx, args[0], writeConc)
			if err != nil {
				return err
			}
			prettyPrint(result)
			return nil
		},
	}
	cmd.Flags().IntVarP(&writeConc, "w", "w", 0, "write concern (0 = server default)")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every message visible on this node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			messages, err := c.List(ctx)
			if err != nil {
				return err
			}
			prettyPrint(messages)
			return nil
		},
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show this node's health report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(serverAddr, timeout)
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			report, err := c.Health(ctx)
			if err != nil {
				return err
			}
			prettyPrint(report)
			return nil
		},
	}
}

func prettyPrint(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
