package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
)

func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Administrar el catálogo de productos",
	}
	cmd.AddCommand(productAddCmd(), productListCmd(), productGetCmd(), productPriceCmd(), productDeleteCmd())
	return cmd
}

// sarisari product add <nombre> <cantidad> <precio>
func productAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <nombre> <cantidad> <precio>",
		Short: "Agregar un producto",
		Args:  cobra.ExactArgs(3),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			qty, err := parseCount(args[1])
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return domain.Invalid("precio inválido %q", args[2])
			}
			id, err := svc.catalog.Create(cmd.Context(), args[0], qty, price)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto %d creado\n", id)
			return nil
		}),
	}
}

// sarisari product list
func productListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Listar productos",
		Args:  cobra.NoArgs,
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			products, err := svc.catalog.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNOMBRE\tCANTIDAD\tPRECIO")
			for _, p := range products {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Quantity, p.Price.StringFixed(entity.MoneyScale))
			}
			return tw.Flush()
		}),
	}
}

// sarisari product get <id>
func productGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Ver un producto",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := svc.catalog.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  cantidad=%d  precio=%s\n",
				p.ID, p.Name, p.Quantity, p.Price.StringFixed(entity.MoneyScale))
			return nil
		}),
	}
}

// sarisari product price <id> <precio>
func productPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <id> <precio>",
		Short: "Cambiar el precio (solo ventas futuras)",
		Args:  cobra.ExactArgs(2),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return domain.Invalid("precio inválido %q", args[1])
			}
			if err := svc.catalog.UpdatePrice(cmd.Context(), id, price); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Precio del producto %d actualizado a %s\n", id, entity.NormalizeMoney(price).StringFixed(entity.MoneyScale))
			return nil
		}),
	}
}

// sarisari product delete <id>
func productDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Eliminar un producto (el historial de ventas se conserva)",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := svc.catalog.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Producto %d eliminado\n", id)
			return nil
		}),
	}
}
