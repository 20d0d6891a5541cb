// Package sku codifica la clave compuesta "<cantidad>-<nombre>-<color>".
//
// Regla de negocio: la base de custos guarda siempre costo por unidad (cantidad
// normalizada a 1), mientras el canal de ventas vende en packs arbitrarios
// embebidos en el primer segmento del SKU. Todo join y todo reporte debe pasar
// por este paquete para que la regla no se duplique.
package sku

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexpint/impacto-vendas/internal/domain"
)

// Separator separador literal de los segmentos del SKU.
const Separator = "-"

// RegistryKey componentes de una clave de registro.
type RegistryKey struct {
	Quantity int
	Name     string
	Color    string
}

// Encode construye la clave de registro: nombre y color en mayúsculas y sin
// espacios alrededor, unidos en el orden fijo cantidad-nombre-color.
func Encode(quantity int, name, color string) string {
	return strings.Join([]string{
		strconv.Itoa(quantity),
		strings.ToUpper(strings.TrimSpace(name)),
		strings.ToUpper(strings.TrimSpace(color)),
	}, Separator)
}

// DecodeRegistryKey separa una clave de registro en sus componentes.
// Devuelve domain.ErrMalformedSKU si hay menos de 3 segmentos o la cantidad no es entera.
func DecodeRegistryKey(s string) (RegistryKey, error) {
	parts := strings.Split(s, Separator)
	if len(parts) < 3 {
		return RegistryKey{}, fmt.Errorf("%w: %q", domain.ErrMalformedSKU, s)
	}
	qty, err := strconv.Atoi(parts[0])
	if err != nil {
		return RegistryKey{}, fmt.Errorf("%w: cantidad %q no es entera", domain.ErrMalformedSKU, parts[0])
	}
	return RegistryKey{
		Quantity: qty,
		Name:     parts[1],
		Color:    strings.Join(parts[2:], Separator),
	}, nil
}

// DecomposeSales descompone un SKU de venta en tamaño de pack y clave base.
// "6-CAMISETA-AZUL" -> packSize 6, baseKey "1-CAMISETA-AZUL": el primer segmento
// es el pack y la clave base se reconstituye forzándolo a "1".
// Devuelve domain.ErrMalformedSKU si el primer segmento no es un entero.
func DecomposeSales(s string) (packSize int, baseKey string, err error) {
	parts := strings.Split(s, Separator)
	packSize, convErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	if convErr != nil {
		return 0, "", fmt.Errorf("%w: pack %q no es entero", domain.ErrMalformedSKU, parts[0])
	}
	baseKey = "1" + Separator + strings.Join(parts[1:], Separator)
	return packSize, baseKey, nil
}

// Normalize normaliza una clave para comparación/indexación: trim + mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
