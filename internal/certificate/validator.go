package certificate

import "strings"

// certificateMarkers identify a fines certificate. Any one is enough.
var certificateMarkers = []string{
	"REGISTRO DE MULTAS",
	"TRANSITO NO PAGADAS",
}

// IsRecognizedCertificate reports whether rawText looks like a fines
// certificate. Line breaks are folded into spaces first so markers split
// across lines still match; the comparison is case-sensitive.
func IsRecognizedCertificate(rawText string) bool {
	flat := flattenLines(rawText)
	for _, marker := range certificateMarkers {
		if strings.Contains(flat, marker) {
			return true
		}
	}
	return false
}

func flattenLines(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}
