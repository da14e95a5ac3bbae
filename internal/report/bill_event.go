package report

import (
	"fmt"
	"strconv"

	"github.com/presupuestosam/internal/budget"
)

// MalformedBudgetError reports a budget entry whose required containers are
// absent. Assembly never produces a partially built tree.
type MalformedBudgetError struct {
	Index int
	Field string
}

func (e *MalformedBudgetError) Error() string {
	return fmt.Sprintf("presupuesto %d: missing required field %q", e.Index, e.Field)
}

// BillEventReport assembles the categorized-budget document. It is a pure
// transformation: all aggregate numbers pass through verbatim, nothing is
// recomputed from the line items.
func BillEventReport(data budget.Collection) (*Document, error) {
	content := titleBlocks()

	for i, p := range data.Presupuestos {
		if p.Totales == nil {
			return nil, &MalformedBudgetError{Index: i, Field: "totales"}
		}
		if p.Categorias == nil {
			return nil, &MalformedBudgetError{Index: i, Field: "categorias"}
		}
		moneda := p.Currency()

		if i > 0 {
			content = append(content, &Divider{})
		}

		content = append(content, &Text{Value: p.Tipo, Style: "h2", Margin: []int{0, 0, 0, 10}})

		if p.DatosGenerales != nil {
			content = append(content, &Text{Value: "Datos Generales", Style: "sectionHeader"})
			content = append(content, datosGeneralesTable(p.DatosGenerales))
		}

		for j, cat := range p.Categorias {
			if cat.Partidas == nil {
				return nil, &MalformedBudgetError{
					Index: i,
					Field: fmt.Sprintf("categorias[%d].partidas", j),
				}
			}
			content = append(content, &Text{Value: cat.Nombre, Style: "sectionHeader"})
			content = append(content, partidasTable(cat.Partidas, moneda, "table"))
		}

		content = append(content, &Text{Value: "Resumen General", Style: "h2", Margin: []int{0, 10, 0, 5}})
		content = append(content, resumenGeneralTable(p, moneda))

		if p.JustificacionTecnica != "" {
			content = append(content, &Text{Value: "Justificación Técnica", Style: "h2", Margin: []int{0, 20, 0, 5}})
			content = append(content, &Text{Value: p.JustificacionTecnica, Style: "justificacion"})
		}
	}

	return &Document{
		Header:  pageHeader(),
		Content: content,
		Styles:  reportStyles(),
	}, nil
}

// datosGeneralesTable emits the fixed six label/value rows, substituting the
// empty string for any missing value. Rows are never omitted.
func datosGeneralesTable(dg *budget.DatosGenerales) *Table {
	invitados := ""
	if dg.Invitados != 0 {
		invitados = strconv.Itoa(dg.Invitados)
	}
	body := [][]Cell{
		{{Text: "Tipo de evento:"}, {Text: dg.TipoEvento}},
		{{Text: "Ubicación:"}, {Text: dg.Ubicacion}},
		{{Text: "Fecha estimada:"}, {Text: dg.Fecha}},
		{{Text: "Número de invitados:"}, {Text: invitados}},
		{{Text: "Modalidad:"}, {Text: dg.Modalidad}},
		{{Text: "Presupuesto máximo:"}, {Text: dg.PresupuestoMaximo}},
	}
	return &Table{
		Widths: []string{"30%", "70%"},
		Body:   body,
		Layout: "noBorders",
		Style:  "datosGenerales",
	}
}

func partidasHeaderRow(moneda string) []Cell {
	return []Cell{
		{Text: "Material", Style: "tableHeader"},
		{Text: "Cantidad", Style: "tableHeader"},
		{Text: "Precio Unit. (" + moneda + ")", Style: "tableHeader"},
		{Text: "Proveedor", Style: "tableHeader"},
		{Text: "Subtotal (" + moneda + ")", Style: "tableHeader"},
	}
}

func partidaRow(p budget.Partida) []Cell {
	cantidad := "-"
	if p.Cantidad != nil {
		cantidad = *p.Cantidad
	}
	precio := "-"
	if p.PrecioUnitario != nil {
		precio = formatNumber(*p.PrecioUnitario)
	}
	return []Cell{
		{Text: p.Material},
		{Text: cantidad},
		{Text: precio},
		{Text: p.Proveedor},
		{Text: formatNumber(p.Subtotal)},
	}
}

func partidasTable(partidas []budget.Partida, moneda, style string) *Table {
	body := [][]Cell{partidasHeaderRow(moneda)}
	for _, p := range partidas {
		body = append(body, partidaRow(p))
	}
	return &Table{
		Widths:     []string{"*", "auto", "auto", "auto", "auto"},
		HeaderRows: 1,
		Body:       body,
		Layout:     "lightHorizontalLines",
		Style:      style,
	}
}

// resumenGeneralTable builds the running summary: one row per category, the
// subtotal, the fee row only when honorarios is non-zero, and the grand total.
func resumenGeneralTable(p budget.Budget, moneda string) *Table {
	var body [][]Cell
	for _, cat := range p.Categorias {
		body = append(body, []Cell{
			{Text: cat.Nombre + ":"},
			{Text: formatNumber(cat.SubtotalCategoria) + " " + moneda},
		})
	}
	body = append(body, []Cell{
		{Text: "Subtotal:", Style: "total"},
		{Text: formatNumber(p.Totales.Subtotal) + " " + moneda, Style: "total"},
	})
	if p.Totales.Honorarios != 0 {
		body = append(body, []Cell{
			{Text: "Honorarios organización:", Style: "total"},
			{Text: formatNumber(p.Totales.Honorarios) + " " + moneda, Style: "total"},
		})
	}
	body = append(body, []Cell{
		{Text: "COSTO TOTAL ESTIMADO:", Style: "total"},
		{Text: formatNumber(p.Totales.CostoTotalEstimado) + " " + moneda, Style: "total"},
	})
	return &Table{
		Widths: []string{"*", "auto"},
		Body:   body,
		Layout: "lightHorizontalLines",
	}
}

// formatNumber renders a float the way the source payload carried it: no
// trailing zeros, no exponent.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
