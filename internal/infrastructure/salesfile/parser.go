// Package salesfile adapta el export delimitado del canal de ventas a la
// secuencia de filas tipadas que consume el análisis. El formato es contrato
// externo: la primera línea cruda es un título y se descarta, el encabezado
// real viene en la segunda, separador ";". Cualquier error del tokenizador
// rechaza el lote entero (sin import parcial).
package salesfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alexpint/impacto-vendas/internal/domain"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/pkg/config"
)

// Parser parsea el export de ventas según el mapeo de columnas configurado.
type Parser struct {
	cols      config.SalesConfig
	delimiter rune
}

// NewParser construye el parser con el mapeo de columnas de la configuración.
func NewParser(cols config.SalesConfig) *Parser {
	return &Parser{cols: cols, delimiter: ';'}
}

// Parse convierte el contenido crudo del archivo en filas tipadas. La
// validación de los campos conocidos ocurre acá, una sola vez: río abajo nadie
// vuelve a mirar strings crudos por nombre de columna.
func (p *Parser) Parse(raw []byte) ([]entity.SalesRecord, error) {
	content := dropFirstLine(string(raw))

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = p.delimiter

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptySalesFile
		}
		return nil, fmt.Errorf("%w: encabezado: %v", domain.ErrMalformedFile, err)
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}

	var records []entity.SalesRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedFile, err)
		}

		get := func(col string) (string, bool) {
			idx, ok := colIdx[col]
			if !ok || idx >= len(row) {
				return "", false
			}
			return strings.TrimSpace(row[idx]), true
		}

		rec := entity.SalesRecord{}
		rec.SKU, _ = get(p.cols.SKUColumn)
		rec.DateRaw, _ = get(p.cols.DateColumn)
		rec.Store, _ = get(p.cols.StoreColumn)
		rec.Status, _ = get(p.cols.StatusColumn)

		if qtyRaw, ok := get(p.cols.QuantityColumn); ok {
			if qty, convErr := strconv.Atoi(qtyRaw); convErr == nil {
				rec.PackCount = qty
				rec.HasPack = true
			}
		}

		// Columnas no reconocidas: al mapa lateral, no se pierden.
		known := map[string]struct{}{
			p.cols.SKUColumn:      {},
			p.cols.QuantityColumn: {},
			p.cols.DateColumn:     {},
			p.cols.StoreColumn:    {},
			p.cols.StatusColumn:   {},
		}
		for name, idx := range colIdx {
			if _, isKnown := known[name]; isKnown || idx >= len(row) {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[name] = strings.TrimSpace(row[idx])
		}

		records = append(records, rec)
	}
	return records, nil
}

// dropFirstLine descarta la primera línea cruda del export (título del canal).
func dropFirstLine(content string) string {
	if i := strings.IndexAny(content, "\r\n"); i >= 0 {
		rest := content[i:]
		rest = strings.TrimPrefix(rest, "\r")
		rest = strings.TrimPrefix(rest, "\n")
		return rest
	}
	return ""
}
