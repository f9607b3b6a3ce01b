package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sarisari-inventory/internal/domain/entity"
)

// sarisari sales [--pdf archivo|directorio]
func newSalesCmd() *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Historial de ventas (más reciente primero)",
		Args:  cobra.NoArgs,
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			if pdfPath != "" {
				return exportSalesPDF(cmd, svc, pdfPath)
			}
			report, err := svc.ledger.Report(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFECHA\tPRODUCTO\tCANT\tTOTAL")
			for _, s := range report.Sales {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
					s.ID, s.SoldAtLocal, s.DisplayName, s.Quantity, s.Total.StringFixed(entity.MoneyScale))
			}
			fmt.Fprintf(tw, "\t\tTOTAL\t%d\t%s\n", report.TotalUnits, report.GrandTotal.StringFixed(entity.MoneyScale))
			return tw.Flush()
		}),
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "exportar a PDF (archivo o directorio)")
	return cmd
}

func exportSalesPDF(cmd *cobra.Command, svc *services, path string) error {
	data, filename, err := svc.ledger.ExportPDF(cmd.Context())
	if err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, filename)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir PDF: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reporte guardado en %s\n", path)
	return nil
}
