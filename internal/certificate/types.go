package certificate

// Placeholder values used when a subject field cannot be located in the document.
// Downstream renderers rely on these exact strings.
const (
	PlateNotDetected      = "NOT_DETECTED"
	NationalIDNotProvided = "NO DETECTADO"
	OwnerPlaceholder      = "PROPIETARIO"
)

// Subject is the certificate holder and the vehicle the certificate refers to.
// Every field always carries a value, either extracted or a placeholder.
type Subject struct {
	Plate      string `json:"plate"`
	NationalID string `json:"national_id"`
	FullName   string `json:"full_name"`
}

// FineRecord is one unpaid fine that already satisfies the eligibility rule.
type FineRecord struct {
	CourtName string `json:"court_name"`
	CaseRoll  string `json:"case_roll"`
	EntryDate string `json:"entry_date"` // DD-MM-YYYY
}

// Status tells whether a document was recognized as a fines certificate.
type Status string

const (
	StatusRejected Status = "rejected"
	StatusAccepted Status = "accepted"
)

// Outcome is the result of parsing one document.
type Outcome struct {
	Status  Status       `json:"status"`
	Subject Subject      `json:"subject"`
	Records []FineRecord `json:"records"`
}

// Rejected returns the outcome for documents that are not fines certificates.
func Rejected() Outcome {
	return Outcome{Status: StatusRejected}
}

// Accepted returns the outcome for a recognized certificate. A nil record
// list is normalized to an empty one.
func Accepted(subject Subject, records []FineRecord) Outcome {
	if records == nil {
		records = []FineRecord{}
	}
	return Outcome{Status: StatusAccepted, Subject: subject, Records: records}
}

// IsRejected reports whether the document was not a recognizable certificate.
func (o Outcome) IsRejected() bool {
	return o.Status != StatusAccepted
}

// HasRecords reports whether the certificate contains at least one eligible fine.
func (o Outcome) HasRecords() bool {
	return !o.IsRejected() && len(o.Records) > 0
}
