// Package filing renders the documents a vehicle owner files with each court
// to request the prescription of old fines, and bundles them into one archive.
package filing

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"

	"github.com/a3tai/mcp-fines-reader/internal/certificate"
)

// ErrNoRecords is returned when there is nothing to file.
var ErrNoRecords = errors.New("no eligible records to file")

const (
	InstructionsFile = "INSTRUCCIONES.txt"
	SummaryFile      = "RESUMEN.xlsx"
)

const instructions = `INSTRUCCIONES PARA PRESENTAR LOS ESCRITOS

1. Imprima cada escrito (un archivo por Juzgado de Policía Local).
2. Complete a mano su domicilio, comuna y correo electrónico en los espacios en blanco.
3. Firme cada escrito en el espacio "FIRMA PROPIETARIO".
4. Adjunte una copia del Certificado de Multas de Tránsito no Pagadas a cada escrito.
5. Presente cada escrito en la oficina de partes del Juzgado indicado en su encabezado.

El archivo RESUMEN.xlsx lista todas las multas incluidas en este pack.
`

// Pack is a rendered filing archive.
type Pack struct {
	Name  string
	Files []string
	Data  []byte
}

// PackName returns the archive file name for a plate.
func PackName(plate string) string {
	return fmt.Sprintf("Pack_Legal_%s.zip", plate)
}

// BuildPack renders one petition per court plus the instructions and the
// summary workbook, and zips them. prefix names the petition files; an empty
// prefix falls back to certificate.DefaultArtifactPrefix.
func BuildPack(subject certificate.Subject, records []certificate.FineRecord, prefix string) (*Pack, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	if prefix == "" {
		prefix = certificate.DefaultArtifactPrefix
	}

	groups := certificate.GroupByCourt(records)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := make([]string, 0, len(groups)+2)

	add := func(name string, data []byte) error {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, name)
		return nil
	}

	for _, g := range groups {
		doc, err := renderPetition(subject, g)
		if err != nil {
			return nil, fmt.Errorf("render petition for %s: %w", g.CourtName, err)
		}
		if err := add(certificate.ArtifactName(prefix, g.Key, subject.Plate)+".docx", doc); err != nil {
			return nil, err
		}
	}

	if err := add(InstructionsFile, []byte(instructions)); err != nil {
		return nil, err
	}

	summary, err := renderSummary(subject, groups)
	if err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	if err := add(SummaryFile, summary); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close pack: %w", err)
	}

	return &Pack{
		Name:  PackName(subject.Plate),
		Files: files,
		Data:  buf.Bytes(),
	}, nil
}
