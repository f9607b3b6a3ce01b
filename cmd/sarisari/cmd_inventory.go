package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
)

// sarisari sell <id> <cantidad>
func newSellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sell <id> <cantidad>",
		Short: "Registrar una venta",
		Args:  cobra.ExactArgs(2),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount(args[1])
			if err != nil {
				return err
			}
			res, err := svc.engine.Sell(cmd.Context(), id, count)
			if err != nil {
				var stockErr *domain.InsufficientStockError
				if errors.As(err, &stockErr) {
					return fmt.Errorf("no hay stock suficiente: disponible %d, solicitado %d", stockErr.Available, stockErr.Requested)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Venta %d registrada: total %s, quedan %d\n",
				res.SaleID, res.Total.StringFixed(entity.MoneyScale), res.Remaining)
			return nil
		}),
	}
}

// sarisari restock <id> <cantidad>
func newRestockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restock <id> <cantidad>",
		Short: "Reabastecer un producto",
		Args:  cobra.ExactArgs(2),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			count, err := parseCount(args[1])
			if err != nil {
				return err
			}
			qty, err := svc.engine.Restock(cmd.Context(), id, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto %d: cantidad %d\n", id, qty)
			return nil
		}),
	}
}

// sarisari replenish [--threshold N] [--days N]
func newReplenishCmd() *cobra.Command {
	var threshold int64
	var days int
	cmd := &cobra.Command{
		Use:   "replenish",
		Short: "Productos a reponer, los más vendidos primero",
		Args:  cobra.NoArgs,
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			list, err := svc.replenishment.GenerateReplenishmentList(cmd.Context(), threshold, days)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PRIORIDAD\tID\tNOMBRE\tSTOCK\tVENDIDO\tPEDIR")
			for _, s := range list {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%d\t%d\n",
					s.Priority, s.ProductID, s.ProductName, s.CurrentStock, s.UnitsSoldRecently, s.SuggestedOrderQty)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().Int64Var(&threshold, "threshold", 5, "umbral de stock")
	cmd.Flags().IntVar(&days, "days", 7, "ventana de ventas en días")
	return cmd
}
