package fipe

import (
	"regexp"
	"strings"
)

var (
	nonAlnum      = regexp.MustCompile(`[^a-zA-Z0-9]`)
	oldPlate      = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	mercosulPlate = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizePlate remove separadores e sobe para maiúsculas.
// É o formato usado nas consultas aos provedores.
func NormalizePlate(plate string) string {
	return strings.ToUpper(nonAlnum.ReplaceAllString(plate, ""))
}

// FormatPlate devolve a forma de exibição: placas antigas ganham o
// hífen (ABC-1234); placas Mercosul ficam sem separador (ABC1D23),
// independente do que o usuário digitou.
func FormatPlate(plate string) string {
	clean := NormalizePlate(plate)

	if oldPlate.MatchString(clean) {
		return clean[:3] + "-" + clean[3:]
	}
	if mercosulPlate.MatchString(clean) {
		return clean
	}
	return clean
}

// IsValidPlate aceita os dois padrões brasileiros.
func IsValidPlate(plate string) bool {
	clean := NormalizePlate(plate)
	return oldPlate.MatchString(clean) || mercosulPlate.MatchString(clean)
}
