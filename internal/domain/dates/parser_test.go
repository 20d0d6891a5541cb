package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexpint/impacto-vendas/internal/domain/dates"
)

func TestParseSaleDate_FechaConHora(t *testing.T) {
	got, ok := dates.ParseSaleDate("15 de março de 2024 13:45")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 13, 45, 0, 0, time.Local), got)
}

func TestParseSaleDate_SinHoraAsumeMedianoche(t *testing.T) {
	got, ok := dates.ParseSaleDate("2 de janeiro de 2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local), got)
}

func TestParseSaleDate_SufijoHsSeElimina(t *testing.T) {
	got, ok := dates.ParseSaleDate("7 de outubro de 2023 hs. 09:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.October, 7, 9, 30, 0, 0, time.Local), got)
}

func TestParseSaleDate_MesEnMayusculas(t *testing.T) {
	got, ok := dates.ParseSaleDate("1 de DEZEMBRO de 2024")
	require.True(t, ok)
	assert.Equal(t, time.December, got.Month())
}

// "março" con la cedilla descompuesta (c + combining cedilla) debe resolver igual.
func TestParseSaleDate_MesDescompuestoNFD(t *testing.T) {
	got, ok := dates.ParseSaleDate("15 de março de 2024")
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())
}

func TestParseSaleDate_NoParseables(t *testing.T) {
	cases := []string{
		"",
		"not a date",
		"15 de marte de 2024",      // mes desconocido
		"quince de março de 2024",  // día no entero
		"15 de março de dosmil",    // año no entero
		"15 de março",              // menos de 3 segmentos " de "
	}
	for _, c := range cases {
		_, ok := dates.ParseSaleDate(c)
		assert.False(t, ok, "debería fallar: %q", c)
	}
}

// Hora ilegible no invalida la fecha: cae a 00:00 (comportamiento heredado del canal).
func TestParseSaleDate_HoraIlegibleCaeAMedianoche(t *testing.T) {
	got, ok := dates.ParseSaleDate("15 de março de 2024 xx:yy")
	require.True(t, ok)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
}

func TestDayOf(t *testing.T) {
	d := dates.DayOf(time.Date(2024, time.March, 15, 23, 59, 59, 0, time.Local))
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local), d)
}
