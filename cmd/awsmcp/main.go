package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"awsmcp/pkg/server"

	_ "awsmcp/adapters/ec2"
	_ "awsmcp/adapters/elb"
	_ "awsmcp/adapters/s3"
	_ "awsmcp/adapters/tgw"
	_ "awsmcp/adapters/vpc"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := server.Options{Version: version, Stderr: os.Stderr}

	root := &cobra.Command{
		Use:           "awsmcp",
		Short:         "MCP adapters for AWS resource domains",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&opts.Adapter, "adapter", "", "adapter to serve (ec2, s3, nlb, alb, tgw, vpc)")
	root.PersistentFlags().StringVar(&opts.Region, "region", "", "AWS region")
	root.PersistentFlags().StringVar(&opts.Profile, "profile", "", "AWS shared config profile")
	root.PersistentFlags().BoolVar(&opts.ReadOnly, "read-only", false, "register read-only tools only")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the adapter's tool catalog over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run(cmd.Context(), opts)
		},
	}
	catalog := &cobra.Command{
		Use:   "catalog",
		Short: "Print the adapter's tool catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Catalog(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	root.AddCommand(serve, catalog)
	return root
}
