package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sarisari-inventory/internal/infrastructure/importer"
)

// sarisari import <archivo.csv> [--encoding utf-8|iso-8859-1|windows-1252]
func newImportCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "import <archivo.csv>",
		Short: "Importar productos desde CSV (nombre,cantidad,precio)",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(func(cmd *cobra.Command, args []string, svc *services) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir CSV: %w", err)
			}
			defer f.Close()

			res, err := importer.NewCSVImporter(svc.catalog).Import(cmd.Context(), f, encoding)
			if res != nil {
				for _, rowErr := range res.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), rowErr.Error())
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Importados %d productos, %d filas con error\n", len(res.Created), len(res.Errors))
			}
			return err
		}),
	}
	cmd.Flags().StringVar(&encoding, "encoding", importer.EncodingUTF8, "codificación del archivo")
	return cmd
}

// sarisari migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crear o actualizar el esquema del almacenamiento",
		Args:  cobra.NoArgs,
		RunE: withServices(func(cmd *cobra.Command, _ []string, svc *services) error {
			// store.Open ya aplicó el esquema
			fmt.Fprintf(cmd.OutOrStdout(), "Esquema %s al día\n", svc.store.Driver)
			return nil
		}),
	}
}
