// Package dates interpreta la fecha de venta en texto libre pt-BR del export:
//
//	"<día> de <mes> de <año>[ hs.][ HH:MM]"  ej. "15 de março de 2024 13:45"
//
// El sufijo " hs." se elimina antes de tokenizar; los tres componentes se
// separan por el delimitador literal " de "; la hora, si viene, va pegada al
// segmento del año y por defecto es 00:00.
package dates

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const delimiter = " de "

// Meses pt-BR -> ordinal 0-11. Claves en NFC minúsculas; la entrada se
// normaliza igual antes del lookup ("março" puede llegar descompuesto).
var months = map[string]time.Month{
	"janeiro":   time.January,
	"fevereiro": time.February,
	"março":     time.March,
	"abril":     time.April,
	"maio":      time.May,
	"junho":     time.June,
	"julho":     time.July,
	"agosto":    time.August,
	"setembro":  time.September,
	"outubro":   time.October,
	"novembro":  time.November,
	"dezembro":  time.December,
}

// ParseSaleDate parsea la fecha de venta. ok=false cuando no es interpretable:
// menos de 3 segmentos " de ", día/año no enteros o mes desconocido.
// Una hora ilegible no invalida la fecha: se asume medianoche.
func ParseSaleDate(s string) (t time.Time, ok bool) {
	if s == "" {
		return time.Time{}, false
	}
	cleaned := strings.Replace(s, " hs.", "", 1)
	parts := strings.Split(cleaned, delimiter)
	if len(parts) < 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}

	monthName := norm.NFC.String(strings.ToLower(strings.TrimSpace(parts[1])))
	month, found := months[monthName]
	if !found {
		return time.Time{}, false
	}

	yearAndTime := strings.Fields(parts[2])
	if len(yearAndTime) == 0 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearAndTime[0])
	if err != nil {
		return time.Time{}, false
	}

	hour, minute := 0, 0
	if len(yearAndTime) > 1 && strings.Contains(yearAndTime[1], ":") {
		timeParts := strings.Split(yearAndTime[1], ":")
		hour, _ = strconv.Atoi(timeParts[0])
		minute, _ = strconv.Atoi(timeParts[1])
	}

	return time.Date(year, month, day, hour, minute, 0, 0, time.Local), true
}

// DayOf trunca un instante a medianoche local (comparaciones a granularidad de día).
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
