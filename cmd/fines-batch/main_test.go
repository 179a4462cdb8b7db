package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
	"github.com/a3tai/mcp-fines-reader/internal/pdf"
)

const certificateText = `CERTIFICADO DE REGISTRO DE MULTAS DE TRANSITO NO PAGADAS
PLACA PATENTE: BBFC12
ID MULTA : 001
TRIBUNAL : JUZGADO DE POLICIA LOCAL DE SANTIAGO
ROL : 123-2020
FECHA INGRESO RMNP : 15-03-2020 00:00:00
`

type fixtures map[string]string

func (f fixtures) ExtractPages(path string) ([]string, error) {
	text, ok := f[filepath.Base(path)]
	if !ok {
		return nil, pdf.ErrNoText
	}
	return []string{text}, nil
}

func newService(t *testing.T) (*pdf.Service, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}

	service, err := pdf.NewService(pdf.Options{
		MaxFileSize: 1 << 20,
		Directory:   dir,
		Clock:       certificate.FixedClock(time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)),
		Extractor:   fixtures{"a.pdf": certificateText, "b.pdf": "OTRO DOCUMENTO"},
	})
	require.NoError(t, err)
	return service, dir
}

func TestRun_TextReport(t *testing.T) {
	service, dir := newService(t)

	var out bytes.Buffer
	err := run(context.Background(), service, 2, nil, options{pack: true}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "BBFC12\t1 fine(s)\t"+filepath.Join(dir, "packs", "Pack_Legal_BBFC12.zip"))
	assert.Contains(t, text, "b.pdf\tREJECTED")
	assert.Contains(t, text, "1 accepted, 1 rejected, 0 failed; 1 eligible fine(s), estimated savings $65000 CLP")
	assert.FileExists(t, filepath.Join(dir, "packs", "Pack_Legal_BBFC12.zip"))
}

func TestRun_JSONReport(t *testing.T) {
	service, _ := newService(t)

	var out bytes.Buffer
	err := run(context.Background(), service, 1, []string{"a.pdf", "../x.pdf"}, options{asJSON: true}, &out)
	require.NoError(t, err)

	var decoded struct {
		Items []struct {
			Path  string `json:"path"`
			Error string `json:"error"`
		} `json:"items"`
		Accepted int `json:"accepted"`
		Failed   int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded.Items, 2)
	assert.Equal(t, "a.pdf", decoded.Items[0].Path)
	assert.NotEmpty(t, decoded.Items[1].Error)
	assert.Equal(t, 1, decoded.Accepted)
	assert.Equal(t, 1, decoded.Failed)
}

func TestRun_NoCertificates(t *testing.T) {
	service, err := pdf.NewService(pdf.Options{MaxFileSize: 1 << 20, Directory: t.TempDir()})
	require.NoError(t, err)

	err = run(context.Background(), service, 1, nil, options{}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "no certificates")
}
