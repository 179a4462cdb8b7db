package certificate

import "strings"

// courtLabelFragments are removed from court names to build grouping keys.
// Longer variants come first so no partial fragment is left behind.
var courtLabelFragments = []string{
	"JUZGADO DE POLICIA LOCAL",
	"JUZGADO POLICIA LOCAL",
	"TRIBUNAL",
}

// NormalizeValue strips double quotes and commas, trims surrounding
// whitespace and upper-cases the result.
func NormalizeValue(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, ",", "")
	return strings.ToUpper(strings.TrimSpace(text))
}

// NormalizeCourtLabel reduces a court name to a short key suitable for
// grouping and for artifact file names. The court name stored on a
// FineRecord is never modified.
func NormalizeCourtLabel(text string) string {
	label := strings.ToUpper(text)
	// Removing a fragment can splice a new one together ("TRIBTRIBUNALUNAL"),
	// so repeat until nothing changes.
	for {
		stripped := label
		for _, fragment := range courtLabelFragments {
			stripped = strings.ReplaceAll(stripped, fragment, "")
		}
		if stripped == label {
			break
		}
		label = stripped
	}
	return strings.TrimSpace(label)
}
