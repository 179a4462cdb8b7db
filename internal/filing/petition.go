package filing

import (
	"github.com/a3tai/mcp-fines-reader/internal/certificate"
)

const blankLine = "__________________________________________________________"

// renderPetition writes the prescription request addressed to one court.
func renderPetition(subject certificate.Subject, group certificate.CourtGroup) ([]byte, error) {
	var d document

	d.paragraph(AlignRight,
		Run{Text: "EN LO PRINCIPAL: Prescripción Art. 24 Ley 18.287.-\n", Bold: true},
		Run{Text: "PRIMER OTROSÍ: Acompaña documentos.\n"},
		Run{Text: "SEGUNDO OTROSÍ: Notificación por correo electrónico."},
	)
	d.blank()

	d.paragraph(AlignCenter, Run{Text: "S.J.L. DE " + group.CourtName, Bold: true})
	d.blank()

	d.paragraph(AlignLeft,
		Run{Text: subject.FullName, Bold: true},
		Run{Text: ", cédula nacional de identidad N° " + subject.NationalID + ", domiciliado en "},
		Run{Text: blankLine, Bold: true},
		Run{Text: ", comuna de _______________, en los autos sobre infracción a la Ley de Tránsito, placa patente única "},
		Run{Text: subject.Plate, Bold: true},
		Run{Text: ", a US. respetuosamente digo:"},
	)
	d.paragraph(AlignLeft, Run{Text: "Que, por este acto, vengo en solicitar se declare la prescripción de las multas " +
		"que se detallan a continuación, en razón de lo dispuesto en el artículo 24 de la Ley N° 18.287, por haber " +
		"transcurrido más de tres años desde su anotación en el Registro de Multas de Tránsito no Pagadas:"})

	rows := make([][]string, 0, len(group.Records))
	for _, r := range group.Records {
		rows = append(rows, []string{r.CaseRoll, r.EntryDate})
	}
	d.table([]string{"ROL CAUSA", "FECHA INGRESO RMNP"}, rows)
	d.blank()

	d.paragraph(AlignLeft,
		Run{Text: "POR TANTO, ", Bold: true},
		Run{Text: "con el mérito de lo expuesto y del tiempo transcurrido,"},
	)
	d.paragraph(AlignLeft, Run{Text: "RUEGO A US. acceder a lo solicitado, declarando la prescripción de la(s) " +
		"multa(s) individualizada(s)."})
	d.blank()

	d.paragraph(AlignLeft,
		Run{Text: "PRIMER OTROSÍ: ", Bold: true},
		Run{Text: "Sírvase US. tener por acompañado el Certificado de Multas de Tránsito no Pagadas emitido por el " +
			"Servicio de Registro Civil e Identificación."},
	)
	d.paragraph(AlignLeft,
		Run{Text: "SEGUNDO OTROSÍ: ", Bold: true},
		Run{Text: "Vengo en solicitar se me notifique la resolución de esta solicitud al correo electrónico: "},
		Run{Text: blankLine, Bold: true},
	)

	d.paragraph(AlignLeft, Run{Text: "\n\n\n___________________________\nFIRMA PROPIETARIO"})
	d.paragraph(AlignLeft, Run{Text: subject.FullName + "\nR.U.N: " + subject.NationalID})

	return d.bytes()
}
