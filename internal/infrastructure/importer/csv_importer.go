// Package importer carga productos al catálogo desde archivos CSV exportados por
// hojas de cálculo (UTF-8, ISO-8859-1 o Windows-1252).
//
// Formato esperado, con o sin encabezado:
//
//	nombre,cantidad,precio
//	Arroz,10,50.00
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sarisari-inventory/internal/domain"
)

// Codificaciones soportadas.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// ProductCreator crea productos en el catálogo (catalog.UseCase).
type ProductCreator interface {
	Create(ctx context.Context, name string, quantity int64, price decimal.Decimal) (int64, error)
}

// RowError error de una fila; la importación continúa con las siguientes.
// Line es la línea del archivo, contando las vacías.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("línea %d: %v", e.Line, e.Err)
}

// Result resumen de la importación.
type Result struct {
	Created []int64
	Errors  []RowError
}

// CSVImporter importa productos fila por fila usando el catálogo.
type CSVImporter struct {
	creator ProductCreator
}

// NewCSVImporter construye el importador.
func NewCSVImporter(creator ProductCreator) *CSVImporter {
	return &CSVImporter{creator: creator}
}

// Import lee r con la codificación indicada y crea un producto por fila válida.
// Los errores de validación se acumulan en Result.Errors; un error de
// almacenamiento o de lectura detiene la importación.
func (im *CSVImporter) Import(ctx context.Context, r io.Reader, encoding string) (*Result, error) {
	decoded, err := decodingReader(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	res := &Result{}
	first := true
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("importer: leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}
		if isBlank(record) {
			continue
		}

		name, qty, price, err := parseRecord(record)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Err: err})
			continue
		}
		id, err := im.creator.Create(ctx, name, qty, price)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				res.Errors = append(res.Errors, RowError{Line: line, Err: err})
				continue
			}
			return res, fmt.Errorf("importer: línea %d: %w", line, err)
		}
		res.Created = append(res.Created, id)
	}
	return res, nil
}

func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrInvalidInput, encoding)
	}
}

func parseRecord(record []string) (string, int64, decimal.Decimal, error) {
	if len(record) < 3 {
		return "", 0, decimal.Zero, domain.Invalid("se esperaban 3 columnas (nombre, cantidad, precio), hay %d", len(record))
	}
	name := strings.TrimSpace(record[0])
	qty, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return "", 0, decimal.Zero, domain.Invalid("cantidad inválida %q", record[1])
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return "", 0, decimal.Zero, domain.Invalid("precio inválido %q", record[2])
	}
	return name, qty, price, nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	return err != nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
