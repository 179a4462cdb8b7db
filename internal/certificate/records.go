package certificate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	recordDelimiter = "ID MULTA"
	courtMarker     = "TRIBUNAL"
	rollYearPrefix  = "AÑO "
)

var (
	courtPattern     = regexp.MustCompile(`TRIBUNAL\s*:\s*(.+)`)
	rollPattern      = regexp.MustCompile(`ROL\s*:\s*([\p{L}\p{N}_\-.]+)`)
	rollYearPattern  = regexp.MustCompile(`AÑO ROL\s*:\s*(\d{4})`)
	entryDatePattern = regexp.MustCompile(`FECHA INGRESO RMNP\s*:\s*([\d\-\s:]+)`)
)

// Template selects which fields a record block must carry.
type Template struct {
	Name string
	// RequireRollYear makes the "AÑO ROL" field mandatory and appends it
	// to the case roll as a "-YYYY" suffix.
	RequireRollYear bool
}

var (
	// StandardTemplate needs court, roll and entry date.
	StandardTemplate = Template{Name: "standard"}
	// RollYearTemplate also needs the roll year, for certificates that
	// print it apart from the roll number.
	RollYearTemplate = Template{Name: "roll-year", RequireRollYear: true}
)

// TemplateByName resolves a configured template name.
func TemplateByName(name string) (Template, error) {
	switch name {
	case "", StandardTemplate.Name:
		return StandardTemplate, nil
	case RollYearTemplate.Name:
		return RollYearTemplate, nil
	default:
		return Template{}, fmt.Errorf("unknown extraction template: %s", name)
	}
}

// ExtractRecords splits rawText into record blocks and returns the eligible
// fines in document order. Incomplete blocks and blocks whose entry date is
// not eligible are dropped without error.
func ExtractRecords(rawText string, now time.Time, tmpl Template) []FineRecord {
	records := []FineRecord{}
	for _, block := range strings.Split(rawText, recordDelimiter) {
		if !strings.Contains(block, courtMarker) {
			continue
		}
		record, ok := parseBlock(block, tmpl)
		if !ok || !IsEligible(record.EntryDate, now) {
			continue
		}
		record.EntryDate, _, _ = strings.Cut(record.EntryDate, " ")
		records = append(records, record)
	}
	return records
}

// parseBlock captures the fields of one block. EntryDate keeps any time of
// day so the caller can apply the eligibility rule to the raw value.
func parseBlock(block string, tmpl Template) (FineRecord, bool) {
	court := courtPattern.FindStringSubmatch(block)
	roll, rollOK := findCaseRoll(block)
	date := entryDatePattern.FindStringSubmatch(block)
	if court == nil || !rollOK || date == nil {
		return FineRecord{}, false
	}

	if tmpl.RequireRollYear {
		year := rollYearPattern.FindStringSubmatch(block)
		if year == nil {
			return FineRecord{}, false
		}
		if !strings.HasSuffix(roll, "-"+year[1]) {
			roll = roll + "-" + year[1]
		}
	}

	return FineRecord{
		CourtName: strings.TrimSpace(court[1]),
		CaseRoll:  roll,
		EntryDate: strings.TrimSpace(date[1]),
	}, true
}

// findCaseRoll returns the first "ROL :" value that is not the "AÑO ROL :"
// field.
func findCaseRoll(block string) (string, bool) {
	for _, loc := range rollPattern.FindAllStringSubmatchIndex(block, -1) {
		if strings.HasSuffix(block[:loc[0]], rollYearPrefix) {
			continue
		}
		return strings.TrimSpace(block[loc[2]:loc[3]]), true
	}
	return "", false
}
