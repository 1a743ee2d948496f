package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "merchantctl",
		Short:         "Administer the Taler merchant gateway",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", os.Getenv("MERCHANT_CONFIG_FILE"), "YAML configuration file")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(refundCmd())
	rootCmd.AddCommand(orderCmd())

	return rootCmd
}
