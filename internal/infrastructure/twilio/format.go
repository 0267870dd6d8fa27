package twilio

import "strings"

// FormatNumber presenta un número E.164 de Norteamérica en formato legible
// "(415) 555-0132". Números de otros países o con longitud inesperada se
// devuelven tal cual.
func FormatNumber(e164 string) string {
	digits := strings.TrimPrefix(e164, "+")
	if !strings.HasPrefix(digits, "1") || len(digits) != 11 {
		return e164
	}
	area, exchange, line := digits[1:4], digits[4:7], digits[7:]
	return "(" + area + ") " + exchange + "-" + line
}

// countryCodes nombres de país aceptados por el asistente y su código ISO 3166-1.
var countryCodes = map[string]string{
	"united states":  "US",
	"estados unidos": "US",
	"canada":         "CA",
	"canadá":         "CA",
	"mexico":         "MX",
	"méxico":         "MX",
	"spain":          "ES",
	"españa":         "ES",
	"colombia":       "CO",
	"united kingdom": "GB",
	"reino unido":    "GB",
}

// CountryNameToCode traduce un nombre de país (en inglés o español) a su
// código ISO de dos letras. Si ya viene un código de dos letras lo respeta;
// nombres desconocidos caen a "US".
func CountryNameToCode(name string) string {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 2 {
		return strings.ToUpper(trimmed)
	}
	if code, ok := countryCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	return "US"
}
