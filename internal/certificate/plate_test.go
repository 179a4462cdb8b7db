package certificate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlate(t *testing.T) {
	padding := strings.Repeat("x", 1000)

	tests := []struct {
		name string
		text string
		want string
	}{
		// Labeled search
		{name: "placa patente label new format", text: "PLACA PATENTE: BBFC12 algo más", want: "BBFC12"},
		{name: "ppu label with dash", text: "PPU: BBFC-12 resto del texto", want: "BBFC12"},
		{name: "patente label old format", text: "PATENTE AB-1234 info", want: "AB1234"},
		{name: "label with dotted pairs is not reassembled", text: "PLACA PATENTE BB.FC.12 datos", want: PlateNotDetected},
		{name: "label with spaced pairs is not reassembled", text: "PLACA PATENTE: BB FC 12 datos", want: PlateNotDetected},
		{name: "label beyond header window", text: strings.Repeat("x", 1500) + " PLACA PATENTE: BBFC12 más datos", want: "BBFC12"},

		// New format free search
		{name: "new format plain", text: "BBFC12 " + padding, want: "BBFC12"},
		{name: "new format dash", text: "DRTV-99 " + padding, want: "DRTV99"},
		{name: "new format dot", text: "DRTV.99 " + padding, want: "DRTV99"},
		{name: "new format dotted BBFC", text: "BBFC.12 " + padding, want: "BBFC12"},

		// Old format free search
		{name: "old format plain", text: "AB1234 " + padding, want: "AB1234"},
		{name: "old format dash", text: "ZZ-0001 " + padding, want: "ZZ0001"},
		{name: "old format AB-1234", text: "AB-1234 " + padding, want: "AB1234"},

		// Unicode word boundaries
		{name: "new format glued to accented letter", text: "ÑBBFC12 " + padding, want: PlateNotDetected},
		{name: "old format glued to accented letter", text: "AB1234É " + padding, want: PlateNotDetected},
		{name: "new format after accented word", text: "AÑO BBFC12 " + padding, want: "BBFC12"},
		{name: "new format followed by comma", text: "BBFC12, " + padding, want: "BBFC12"},

		// Nothing
		{name: "no plate", text: "Este texto no tiene patente " + padding, want: PlateNotDetected},
		{name: "empty", text: "", want: PlateNotDetected},
		{name: "free search ignores text past header", text: strings.Repeat("x", 1001) + "BBFC12", want: PlateNotDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlate(tt.text))
		})
	}
}

func TestExtractPlate_LabelWinsOverFreeSearch(t *testing.T) {
	text := "PLACA PATENTE: DRTV99 " + strings.Repeat("x", 500) + " AB1234"
	assert.Equal(t, "DRTV99", ExtractPlate(text))
}

func TestExtractPlate_NewFormatBeforeOldFormat(t *testing.T) {
	text := "AB1234 y luego BBFC12"
	assert.Equal(t, "BBFC12", ExtractPlate(text))
}

func TestExtractPlate_NewFormatExcludesVowels(t *testing.T) {
	// AEIO is not a valid new-format prefix, and there is no old-format match.
	assert.Equal(t, PlateNotDetected, ExtractPlate("AEIO12 "))
}

func TestExtractPlateWith_CustomMatchers(t *testing.T) {
	calls := 0
	never := func(string) (string, bool) {
		calls++
		return "", false
	}
	always := func(string) (string, bool) { return "ZZZZ99", true }
	unreachable := func(string) (string, bool) {
		t.Fatal("matcher after a successful one must not run")
		return "", false
	}

	got := ExtractPlateWith("anything", []PlateMatcher{never, always, unreachable})
	assert.Equal(t, "ZZZZ99", got)
	assert.Equal(t, 1, calls)

	assert.Equal(t, PlateNotDetected, ExtractPlateWith("anything", nil))
}

func TestHeader_CountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("Ñ", 1200)
	assert.Equal(t, 1000, len([]rune(header(text))))
	assert.Equal(t, "abc", header("abc"))
}
