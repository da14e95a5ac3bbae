package report

import (
	"fmt"

	"github.com/presupuestosam/internal/budget"
)

// BillReport assembles the flat-materials document: one materials table per
// budget entry with a synthetic total row, followed by the four-row cost
// summary. Totals pass through verbatim, same as BillEventReport.
func BillReport(data budget.MaterialsCollection) (*Document, error) {
	content := titleBlocks()

	for i, p := range data.Presupuestos {
		if p.Totales == nil {
			return nil, &MalformedBudgetError{Index: i, Field: "totales"}
		}
		if p.Partidas == nil {
			return nil, &MalformedBudgetError{Index: i, Field: "partidas"}
		}
		moneda := p.Currency()

		if i > 0 {
			content = append(content, &Divider{})
		}

		materiales := partidasTable(p.Partidas, moneda, "")
		materiales.Body = append(materiales.Body, []Cell{
			{Text: "Total Materiales", ColSpan: 4},
			{},
			{},
			{},
			{Text: formatNumber(p.Totales.Materiales) + " " + moneda, Style: "total"},
		})

		section := []Node{
			&Text{
				Value:  fmt.Sprintf("Presupuesto %d: %s", i+1, p.Tipo),
				Style:  "h2",
				Margin: []int{0, 0, 0, 10},
			},
			&Text{Value: "Detalle de Materiales", Style: "h2", Margin: []int{0, 10, 0, 5}},
			materiales,
			&Text{Value: "Resumen de Costos", Style: "h2", Margin: []int{0, 10, 0, 5}},
			costosTable(p.Totales, moneda),
			&Text{Value: "Justificación Técnica", Style: "h2", Margin: []int{0, 20, 0, 5}},
			&Text{Value: p.JustificacionTecnica, Style: "justificacion"},
		}

		content = append(content, &Stack{Items: section, Style: "presupuestoSection"})
	}

	return &Document{
		Header:  pageHeader(),
		Content: content,
		Styles:  reportStyles(),
	}, nil
}

// costosTable always carries all four rows; the grand total is displayed even
// when it equals the sum of the parts.
func costosTable(t *budget.MaterialsTotales, moneda string) *Table {
	row := func(label string, v float64) []Cell {
		return []Cell{
			{Text: label, Style: "total"},
			{Text: formatNumber(v) + " " + moneda, Style: "total"},
		}
	}
	return &Table{
		Widths: []string{"*", "auto"},
		Body: [][]Cell{
			row("Total Materiales:", t.Materiales),
			row("Mano de Obra:", t.ManoDeObra),
			row("Extras:", t.Extras),
			row("COSTO TOTAL ESTIMADO:", t.CostoTotalEstimado),
		},
		Layout: "lightHorizontalLines",
	}
}
