package earnings

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePrice переводит строку цены в число.
// Символы валюты и пробелы отбрасываются. Точка или запятая, за которой в конце строки
// идут одна или две цифры, считается десятичным разделителем, остальные разделители
// считаются разделителями тысяч: "$2.500" = 2500, "$2.500,50" = 2500.5, "$1,5" = 1.5.
// Некорректная строка даёт 0.
func ParsePrice(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), ".,")
	if cleaned == "" {
		return 0
	}

	intPart, fracPart := cleaned, ""
	if i := strings.LastIndexAny(cleaned, ".,"); i >= 0 {
		tail := cleaned[i+1:]
		if len(tail) == 1 || len(tail) == 2 {
			intPart, fracPart = cleaned[:i], tail
		}
	}

	intPart = strings.NewReplacer(".", "", ",", "").Replace(intPart)
	if intPart == "" {
		intPart = "0"
	}

	number := intPart
	if fracPart != "" {
		number += "." + fracPart
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0
	}
	return v
}
