package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/bootstrap"
	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order <number>",
		Short: "Show an order and its backend links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				view, err := app.Query.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Order:       %s\n", view.ExternalID)
				fmt.Fprintf(out, "Status:      %s\n", view.Order.Status)
				fmt.Fprintf(out, "Total:       %s %s\n", view.Order.Total.String(), view.Order.Currency)
				fmt.Fprintf(out, "Transaction: %s\n", view.TransactionURL)
				if view.RefundURL != "" {
					fmt.Fprintf(out, "Refund:      %s\n", view.RefundURL)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(orderCreateCmd())
	return cmd
}

func orderCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pending order and fill a session cart with its lines",
		Long: `Create a pending order whose total is the sum of --line entries and put
the same lines into the cart of --session. Each line is
"<product>:<title>:<quantity>:<unit price>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, _ := cmd.Flags().GetString("session")
			currency, _ := cmd.Flags().GetString("currency")
			rawLines, _ := cmd.Flags().GetStringArray("line")

			lines := make([]domain.CartLine, 0, len(rawLines))
			for _, raw := range rawLines {
				line, err := parseCartLine(raw)
				if err != nil {
					return err
				}
				lines = append(lines, line)
			}

			order := &domain.Order{
				Currency: currency,
				Status:   domain.OrderPending,
				Shipping: shippingFromFlags(cmd),
			}

			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Coordinator.PlaceOrder(ctx, order, session, lines); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created order %s (%s) totalling %s %s\n",
					order.Number, order.ExternalID(), order.Total.String(), order.Currency)
				return nil
			})
		},
	}

	cmd.Flags().String("session", "", "Session whose cart receives the lines")
	cmd.Flags().String("currency", "KUDOS", "Order currency")
	cmd.Flags().StringArray("line", nil, "Cart line as product:title:quantity:unit_price (repeatable)")
	cmd.Flags().String("country", "", "Shipping country code")
	cmd.Flags().String("state", "", "Shipping state")
	cmd.Flags().String("city", "", "Shipping city")
	cmd.Flags().String("postcode", "", "Shipping postcode")
	cmd.Flags().String("street", "", "Shipping street and building number")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func parseCartLine(raw string) (domain.CartLine, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 4 {
		return domain.CartLine{}, fmt.Errorf("invalid --line %q: want product:title:quantity:unit_price", raw)
	}

	qty, err := strconv.Atoi(parts[2])
	if err != nil || qty <= 0 {
		return domain.CartLine{}, fmt.Errorf("invalid quantity in --line %q", raw)
	}
	price, err := decimal.NewFromString(parts[3])
	if err != nil || price.IsNegative() {
		return domain.CartLine{}, fmt.Errorf("invalid unit price in --line %q", raw)
	}

	return domain.CartLine{
		ProductID: parts[0],
		Title:     parts[1],
		Quantity:  qty,
		UnitPrice: price,
	}, nil
}

func shippingFromFlags(cmd *cobra.Command) domain.Address {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	return domain.Address{
		Country:  get("country"),
		State:    get("state"),
		City:     get("city"),
		Postcode: get("postcode"),
		Line1:    get("street"),
	}
}
