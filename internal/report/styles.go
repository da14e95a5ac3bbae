package report

import "time"

// timeNow is stubbed in tests so assembled documents are reproducible.
var timeNow = time.Now

func reportStyles() StyleDictionary {
	return StyleDictionary{
		"h1": {
			FontSize: 24,
			Bold:     true,
			Margin:   []int{0, 5},
		},
		"h2": {
			FontSize: 18,
			Bold:     true,
			Margin:   []int{0, 10, 0, 5},
		},
		"h3": {
			FontSize: 16,
			Bold:     true,
		},
		"table": {
			Margin: []int{0, 5, 0, 15},
		},
		"tableHeader": {
			Bold:      true,
			FontSize:  13,
			Color:     "black",
			FillColor: "#eeeeee",
		},
		"sectionHeader": {
			Bold:     true,
			FontSize: 14,
			Color:    "#2c5282",
			Margin:   []int{0, 15, 0, 5},
		},
		"total": {
			Bold:     true,
			FontSize: 14,
		},
		"justificacion": {
			FontSize: 12,
			Italics:  true,
			Margin:   []int{0, 10, 0, 10},
		},
		"presupuestoSection": {
			Margin: []int{0, 0, 0, 20},
		},
		"divider": {
			Margin: []int{0, 15, 0, 15},
		},
		"datosGenerales": {
			Margin: []int{0, 5, 0, 15},
		},
	}
}

// pageHeader is the running header printed on every page.
func pageHeader() *Text {
	return &Text{
		Value:     "FICCT-UAGRM",
		Alignment: "right",
		Margin:    []int{5, 5},
	}
}

// titleBlocks returns the shared document opening: banner plus title columns
// and the right-aligned date stamp. The date is the only non-deterministic
// piece of an assembled document.
func titleBlocks() []Node {
	return []Node{
		&Columns{Items: []Node{
			&Image{Path: "assets/ficct_banner.png", Width: 50, Height: 80},
			&Text{Value: "Presupuesto by Sam", Style: "h1", Margin: []int{10, 25, 0, 0}},
		}},
		&Text{
			Value:     "Fecha: " + timeNow().Format("02/01/2006"),
			Alignment: "right",
			Margin:    []int{0, 10, 0, 20},
		},
	}
}
