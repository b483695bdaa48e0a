// Package pdf genera la representación imprimible de un registro de
// lote con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° de lote + producto  │  Estado + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: operador / verificador / cantidad / fecha producción │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Materia prima | % | Teórico | Real | Lote        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  INTEGRIDAD: hash SHA-256 del formulario + sellos de firma   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	apprecords "github.com/dmorales/batch-records-api/internal/application/records"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 85, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var statusLabels = map[string]string{
	entity.StatusDraft:    "BORRADOR",
	entity.StatusSigned:   "FIRMADO",
	entity.StatusApproved: "APROBADO",
	entity.StatusRejected: "RECHAZADO",
}

var _ apprecords.PDFGenerator = (*MarotoRecordGenerator)(nil)

// MarotoRecordGenerator implementa records.PDFGenerator usando Maroto v2.
type MarotoRecordGenerator struct{}

// NewMarotoRecordGenerator construye el generador.
func NewMarotoRecordGenerator() *MarotoRecordGenerator { return &MarotoRecordGenerator{} }

// GenerateRecordPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRecordGenerator) GenerateRecordPDF(
	_ context.Context,
	record *entity.BatchRecord,
	lines []entity.BatchFormulationLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Registro de Lote "+record.BatchNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailsRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(lines) > 0 {
		m.AddRows(tableHeaderRow())
		for _, r := range tableLineRows(lines) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	m.AddRows(line.NewRow(3))
	for _, r := range integrityRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: lote + producto (izq) y estado + fecha (der).
func headerRow(record *entity.BatchRecord) core.Row {
	status := statusLabels[record.Status]
	if status == "" {
		status = strings.ToUpper(record.Status)
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("REGISTRO DE LOTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(record.BatchNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New(record.ProductName, props.Text{
				Size: 9, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(status, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Creado: "+record.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// detailsRow: operador, verificador, cantidad y fecha de producción.
func detailsRow(record *entity.BatchRecord) core.Row {
	verificador := record.VerificadorName
	if verificador == "" {
		verificador = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Operador: %s   |   Verificador: %s   |   Cantidad: %s   |   Fecha producción: %s",
				record.OperatorName, verificador,
				record.Quantity.String(), record.ProductionDate,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de formulación.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Materia prima", 4, align.Left),
		h("%", 1, align.Right),
		h("Teórico", 2, align.Right),
		h("Real", 2, align.Right),
		h("Lote MP", 2, align.Left),
	)
}

// tableLineRows: una fila por renglón del snapshot de formulación.
func tableLineRows(lines []entity.BatchFormulationLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		actual := "—"
		if l.ActualQuantity != nil {
			actual = l.ActualQuantity.StringFixed(3)
		}
		lot := l.LotNumber
		if lot == "" {
			lot = "—"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.ItemNumber),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				l.RawMaterialName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Percentage.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				l.TheoreticalQuantity.StringFixed(3)+" "+l.Unit,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				actual,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				lot,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// integrityRows: hash del formulario y sellos de firma/verificación.
func integrityRows(record *entity.BatchRecord) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("INTEGRIDAD DEL REGISTRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("SHA-256 del formulario:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(record.DataHash, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)),
	}

	if record.SignedAt != nil {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Firmado electrónicamente por %s el %s",
				record.OperatorName, record.SignedAt.Format("02/01/2006 15:04")),
				props.Text{Size: 7.5, Top: 1}),
		)))
	}
	if record.VerifiedAt != nil && record.VerificadorName != "" {
		verbo := "aprobado"
		if record.Status == entity.StatusRejected {
			verbo = "rechazado"
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Verificado (%s) por %s el %s",
				verbo, record.VerificadorName, record.VerifiedAt.Format("02/01/2006 15:04")),
				props.Text{Size: 7.5, Top: 1}),
		)))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado por el sistema de registros de lote. "+
				"Cualquier alteración del formulario invalida el hash impreso.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}
