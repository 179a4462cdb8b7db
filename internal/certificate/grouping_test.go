package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByCourt(t *testing.T) {
	records := []FineRecord{
		{CourtName: "JUZGADO DE POLICIA LOCAL DE SANTIAGO", CaseRoll: "1"},
		{CourtName: "TRIBUNAL DE ÑUÑOA", CaseRoll: "2"},
		{CourtName: "JUZGADO DE POLICIA LOCAL DE SANTIAGO", CaseRoll: "3"},
	}

	groups := GroupByCourt(records)
	require.Len(t, groups, 2)

	assert.Equal(t, "DE SANTIAGO", groups[0].Key)
	assert.Equal(t, "JUZGADO DE POLICIA LOCAL DE SANTIAGO", groups[0].CourtName)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "1", groups[0].Records[0].CaseRoll)
	assert.Equal(t, "3", groups[0].Records[1].CaseRoll)

	assert.Equal(t, "DE ÑUÑOA", groups[1].Key)
	assert.Len(t, groups[1].Records, 1)
}

func TestGroupByCourt_SameCourtDifferentSpelling(t *testing.T) {
	groups := GroupByCourt([]FineRecord{
		{CourtName: "JUZGADO DE POLICIA LOCAL PROVIDENCIA"},
		{CourtName: "JUZGADO POLICIA LOCAL PROVIDENCIA"},
	})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Records, 2)
}

func TestGroupByCourt_Empty(t *testing.T) {
	assert.Empty(t, GroupByCourt(nil))
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "Escrito JPL DE SANTIAGO_BBFC12", ArtifactName("", "DE SANTIAGO", "BBFC12"))
	assert.Equal(t, "Solicitud DE MAIPU_AB1234", ArtifactName("Solicitud", "DE MAIPU", "AB1234"))
}
