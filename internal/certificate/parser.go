package certificate

import (
	"regexp"
	"strings"
	"time"
)

// Subject labels and their values share a line; an empty field must not
// borrow the next line.
var (
	nationalIDPattern = regexp.MustCompile(`(?:R\.U\.[NT]\.?|RU[NT])[ \t]*:[ \t]*([\d.\-Kk]+)`)
	fullNamePattern   = regexp.MustCompile(`(?m)(?:Nombre|NOMBRE)[ \t]*:[ \t]*([^\n]+?)(?:Fech|FECH|R\.U\.N|$)`)
)

// Parser turns the text of a fines certificate into an Outcome.
// A Parser holds no mutable state and is safe for concurrent use.
type Parser struct {
	template Template
	matchers []PlateMatcher
}

// NewParser creates a parser that extracts records with the given template.
func NewParser(tmpl Template) *Parser {
	return &Parser{
		template: tmpl,
		matchers: DefaultPlateMatchers,
	}
}

// Template returns the record template in use.
func (p *Parser) Template() Template {
	return p.template
}

// ParsePages joins page texts with newlines and parses the result.
// A document without any text is rejected.
func (p *Parser) ParsePages(pages []string, now time.Time) Outcome {
	text := strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		return Rejected()
	}
	return p.Parse(text, now)
}

// Parse validates rawText, extracts the subject and the eligible fines.
// It never fails: unrecognized documents and unexpected faults during
// extraction both yield a rejected outcome.
func (p *Parser) Parse(rawText string, now time.Time) (outcome Outcome) {
	if !IsRecognizedCertificate(rawText) {
		return Rejected()
	}

	defer func() {
		if r := recover(); r != nil {
			outcome = Rejected()
		}
	}()

	subject := p.extractSubject(rawText)
	records := ExtractRecords(rawText, now, p.template)
	return Accepted(subject, records)
}

// extractSubject locates each subject field independently, falling back to
// its placeholder when missing.
func (p *Parser) extractSubject(rawText string) Subject {
	subject := Subject{
		Plate:      PlateNotDetected,
		NationalID: NationalIDNotProvided,
		FullName:   OwnerPlaceholder,
	}

	if plate := NormalizeValue(ExtractPlateWith(flattenLines(rawText), p.matchers)); plate != "" {
		subject.Plate = plate
	}
	if id := captureNormalized(nationalIDPattern, rawText); id != "" {
		subject.NationalID = id
	}
	if name := captureNormalized(fullNamePattern, rawText); name != "" {
		subject.FullName = name
	}

	return subject
}

func captureNormalized(pattern *regexp.Regexp, text string) string {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return NormalizeValue(m[1])
}
