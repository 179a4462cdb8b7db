package certificate

import "fmt"

// DefaultArtifactPrefix starts the name of every generated filing.
const DefaultArtifactPrefix = "Escrito JPL"

// CourtGroup collects the fines that go into one filing.
type CourtGroup struct {
	Key       string       `json:"key"`        // normalized court label
	CourtName string       `json:"court_name"` // first raw court name seen for Key
	Records   []FineRecord `json:"records"`
}

// GroupByCourt groups records by NormalizeCourtLabel(CourtName). Groups
// appear in the order their first record appears, and records keep their
// relative order inside a group.
func GroupByCourt(records []FineRecord) []CourtGroup {
	var groups []CourtGroup
	index := make(map[string]int)
	for _, r := range records {
		key := NormalizeCourtLabel(r.CourtName)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CourtGroup{Key: key, CourtName: r.CourtName})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// ArtifactName builds the file name (without extension) of a court filing.
func ArtifactName(prefix, courtKey, plate string) string {
	if prefix == "" {
		prefix = DefaultArtifactPrefix
	}
	return fmt.Sprintf("%s %s_%s", prefix, courtKey, plate)
}
