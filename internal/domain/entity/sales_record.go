package entity

// SalesRecord una fila del export de ventas, ya validada en la ingesta.
// Los campos conocidos se tipan una sola vez; las columnas no reconocidas
// quedan en Extra para no perder información de la planilla.
type SalesRecord struct {
	SKU       string
	PackCount int    // cantidad de packs vendidos ("Quantidade por SKU")
	HasPack   bool   // false si la columna faltaba o no era numérica
	DateRaw   string // texto libre pt-BR ("2 de março de 2024 14:30 hs.")
	Store     string // "Loja Oficial"
	Status    string // "Estado Atual"
	Extra     map[string]string
}

// HasSKU indica si la fila trae SKU (las filas sin SKU se saltan en la conciliación).
func (r SalesRecord) HasSKU() bool {
	return r.SKU != ""
}
