package certificate

import (
	"regexp"
	"strings"
)

// RE2's \b only knows ASCII word characters, so "ÑBBFC12" would match.
// These delimiters treat any Unicode letter or digit as part of a word.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// headerWindow bounds the unlabeled plate searches to the document header.
// Deep tabular data contains incidental six-character runs.
const headerWindow = 1000

var (
	labeledPlatePattern = regexp.MustCompile(`(?:PLACA|PATENTE|PPU).*?([A-Z0-9]{2,4}[\s.\-]?\d{2,4})`)
	newPlatePattern     = regexp.MustCompile(wordStart + `([BCDFGHJKLPRSTVWXYZ]{4})[\s.\-]?(\d{2})` + wordEnd)
	oldPlatePattern     = regexp.MustCompile(wordStart + `([A-Z]{2})[\s.\-]?(\d{4})` + wordEnd)

	plateSeparators = strings.NewReplacer(".", "", " ", "", "-", "")
)

// PlateMatcher tries to find a plate in text. It returns false when it has
// nothing to offer so the next matcher can run.
type PlateMatcher func(text string) (string, bool)

// DefaultPlateMatchers lists the plate strategies in priority order. New
// plate formats are added by appending a matcher.
var DefaultPlateMatchers = []PlateMatcher{
	matchLabeledPlate,
	matchNewFormatPlate,
	matchOldFormatPlate,
}

// ExtractPlate runs the default matchers in order and returns the first
// plate found, or PlateNotDetected.
func ExtractPlate(text string) string {
	return ExtractPlateWith(text, DefaultPlateMatchers)
}

// ExtractPlateWith runs the given matchers in order with early exit.
func ExtractPlateWith(text string, matchers []PlateMatcher) string {
	for _, match := range matchers {
		if plate, ok := match(text); ok {
			return plate
		}
	}
	return PlateNotDetected
}

// matchLabeledPlate looks for a plate after a PLACA, PATENTE or PPU label
// anywhere in the document. Only the first label occurrence is considered
// and the cleaned capture must be exactly six characters long. Plates split
// into 2+2+2 groups ("BB.FC.12") are not reassembled.
func matchLabeledPlate(text string) (string, bool) {
	m := labeledPlatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	plate := plateSeparators.Replace(m[1])
	if len(plate) != 6 {
		return "", false
	}
	return plate, true
}

// matchNewFormatPlate finds four consonants followed by two digits in the header.
func matchNewFormatPlate(text string) (string, bool) {
	return matchHeaderPlate(newPlatePattern, text)
}

// matchOldFormatPlate finds two letters followed by four digits in the header.
func matchOldFormatPlate(text string) (string, bool) {
	return matchHeaderPlate(oldPlatePattern, text)
}

func matchHeaderPlate(pattern *regexp.Regexp, text string) (string, bool) {
	m := pattern.FindStringSubmatch(header(text))
	if m == nil {
		return "", false
	}
	return m[1] + m[2], true
}

// header returns the first headerWindow characters of text.
func header(text string) string {
	count := 0
	for i := range text {
		if count == headerWindow {
			return text[:i]
		}
		count++
	}
	return text
}
