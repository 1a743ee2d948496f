package main

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/bootstrap"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that the merchant backend is reachable and compatible",
		Long: `Fetch the backend's /config and compare its protocol version with the
one this gateway implements. With --currency the backend must also use that
currency. Exits non-zero when the backend is not usable.`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().String("currency", "", "Currency the backend must use")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	currency, _ := cmd.Flags().GetString("currency")

	backend, err := bootstrap.NewBackend(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend:  %s\n", backend.Endpoints.Base())
	fmt.Fprintf(out, "Protocol: %d:0:%d\n", services.ClientVersion.Current, services.ClientVersion.Age)

	scope := application.Scope{Actor: services.ActorAdmin}
	if err := backend.Negotiator.Negotiate(ctx, scope, currency); err != nil {
		fmt.Fprintln(out, "Status:   INCOMPATIBLE")
		return err
	}

	fmt.Fprintln(out, "Status:   OK")
	return nil
}
