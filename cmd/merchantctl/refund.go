package main

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/application/services"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/bootstrap"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func refundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund <number>",
		Short: "Refund part or all of a paid order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("amount")
			reason, _ := cmd.Flags().GetString("reason")

			amount, err := decimal.NewFromString(raw)
			if err != nil {
				return fmt.Errorf("invalid --amount %q: %w", raw, err)
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				result, err := app.Refunds.Refund(ctx, services.RefundCommand{
					OrderNumber: args[0],
					Amount:      amount,
					Reason:      reason,
					Actor:       services.ActorAdmin,
				})
				if err != nil {
					if svcErr, ok := application.IsServiceError(err); ok {
						return fmt.Errorf("%s: %s", svcErr.Code, svcErr.Message)
					}
					return err
				}

				notice, err := app.Refunds.RefundNotice(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Refund URI: %s\n", result.RefundURI)
				fmt.Fprintf(out, "Refund URL: %s\n", result.RefundURL)
				fmt.Fprintln(out, notice)
				return nil
			})
		},
	}

	cmd.Flags().String("amount", "", "Amount to refund in the order currency")
	cmd.Flags().String("reason", "", "Reason shown to the customer")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
