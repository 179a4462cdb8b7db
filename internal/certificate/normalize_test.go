package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "removes double quotes", input: `"JUAN"`, want: "JUAN"},
		{name: "removes commas", input: "PEREZ, JUAN", want: "PEREZ JUAN"},
		{name: "strips whitespace", input: "  JUAN  ", want: "JUAN"},
		{name: "uppercases", input: "juan perez", want: "JUAN PEREZ"},
		{name: "combined", input: `  "juan, perez"  `, want: "JUAN PEREZ"},
		{name: "empty", input: "", want: ""},
		{name: "keeps enye", input: "ñuñoa", want: "ÑUÑOA"},
		{name: "keeps accented vowels", input: "josé maría", want: "JOSÉ MARÍA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeValue(tt.input))
		})
	}
}

func TestNormalizeValue_Idempotent(t *testing.T) {
	inputs := []string{
		`  "juan, perez"  `,
		"12.345.678-k",
		` " , " `,
		"josé maría",
		"",
	}
	for _, in := range inputs {
		once := NormalizeValue(in)
		assert.Equal(t, once, NormalizeValue(once), "input %q", in)
	}
}

func TestNormalizeCourtLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "juzgado de policia local", input: "JUZGADO DE POLICIA LOCAL DE SANTIAGO", contains: "SANTIAGO"},
		{name: "juzgado policia local without de", input: "JUZGADO POLICIA LOCAL PROVIDENCIA", contains: "PROVIDENCIA"},
		{name: "tribunal", input: "TRIBUNAL DE ÑUÑOA", contains: "ÑUÑOA"},
		{name: "lowercase input", input: "juzgado de policia local santiago", contains: "SANTIAGO"},
		{name: "multi word commune", input: "JUZGADO DE POLICIA LOCAL DE LAS CONDES", contains: "LAS CONDES"},
		{name: "spliced fragment", input: "TRIBTRIBUNALUNAL DE MAIPU", contains: "MAIPU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeCourtLabel(tt.input)
			assert.Contains(t, got, tt.contains)
			assert.NotContains(t, got, "JUZGADO")
			assert.NotContains(t, got, "POLICIA LOCAL")
			assert.NotContains(t, got, "TRIBUNAL")
			assert.Equal(t, got, NormalizeCourtLabel(got))
		})
	}
}

func TestNormalizeCourtLabel_Exact(t *testing.T) {
	assert.Equal(t, "DE SANTIAGO", NormalizeCourtLabel("JUZGADO DE POLICIA LOCAL DE SANTIAGO"))
	assert.Equal(t, "PROVIDENCIA", NormalizeCourtLabel("juzgado policia local providencia"))
	assert.Equal(t, "", NormalizeCourtLabel(""))
}
