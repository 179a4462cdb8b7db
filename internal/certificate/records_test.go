package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rollYearCertificate = `REGISTRO DE MULTAS
ID MULTA : 10
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE MAIPU
AÑO ROL : 2019
ROL : 5521
FECHA INGRESO RMNP : 04-02-2020 09:12:00
ID MULTA : 11
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE MAIPU
ROL : 7781
FECHA INGRESO RMNP : 04-02-2020 09:12:00
`

func TestExtractRecords_SkipsRollYearLabel(t *testing.T) {
	records := ExtractRecords(rollYearCertificate, referenceDay, StandardTemplate)

	require.Len(t, records, 2)
	assert.Equal(t, "5521", records[0].CaseRoll)
	assert.Equal(t, "7781", records[1].CaseRoll)
	assert.Equal(t, "04-02-2020", records[0].EntryDate)
}

func TestExtractRecords_RollYearTemplate(t *testing.T) {
	records := ExtractRecords(rollYearCertificate, referenceDay, RollYearTemplate)

	// The second block has no roll year and is dropped.
	require.Len(t, records, 1)
	assert.Equal(t, "5521-2019", records[0].CaseRoll)
}

func TestExtractRecords_RollYearNotDuplicated(t *testing.T) {
	text := "ID MULTA\nTRIBUNAL : TRIBUNAL DE LA FLORIDA\nAÑO ROL : 2019\nROL : 5521-2019\nFECHA INGRESO RMNP : 04-02-2020\n"
	records := ExtractRecords(text, referenceDay, RollYearTemplate)

	require.Len(t, records, 1)
	assert.Equal(t, "5521-2019", records[0].CaseRoll)
}

func TestExtractRecords_DropsIncompleteBlocks(t *testing.T) {
	text := `REGISTRO DE MULTAS
ID MULTA : 1
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE LA REINA
FECHA INGRESO RMNP : 15-03-2020
ID MULTA : 2
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE LA REINA
ROL : 77-2018
ID MULTA : 3
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE LA REINA
ROL : 78-2018
FECHA INGRESO RMNP : 31-02-2019
ID MULTA : 4
ROL : 79-2018
FECHA INGRESO RMNP : 15-03-2019
ID MULTA : 5
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE LA REINA
ROL : 80-2018
FECHA INGRESO RMNP : 15-03-2019
`
	records := ExtractRecords(text, referenceDay, StandardTemplate)

	require.Len(t, records, 1)
	assert.Equal(t, "80-2018", records[0].CaseRoll)
	assert.Equal(t, "JUZGADO DE POLICIA LOCAL DE LA REINA", records[0].CourtName)
}

func TestExtractRecords_PreservesDocumentOrder(t *testing.T) {
	records := ExtractRecords(twoCourtsCertificate, referenceDay, StandardTemplate)

	require.Len(t, records, 2)
	assert.Equal(t, "123-2020", records[0].CaseRoll)
	assert.Equal(t, "789-2019", records[1].CaseRoll)
}

func TestExtractRecords_EmptyInput(t *testing.T) {
	records := ExtractRecords("", referenceDay, StandardTemplate)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestTemplateByName(t *testing.T) {
	tmpl, err := TemplateByName("")
	require.NoError(t, err)
	assert.Equal(t, StandardTemplate, tmpl)

	tmpl, err = TemplateByName("roll-year")
	require.NoError(t, err)
	assert.True(t, tmpl.RequireRollYear)

	_, err = TemplateByName("legacy")
	assert.Error(t, err)
}
