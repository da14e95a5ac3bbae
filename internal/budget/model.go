// Package budget holds the structured budget payloads produced by the
// extraction step. Values are immutable once decoded; field names mirror the
// JSON schema the model is forced to emit, so the Spanish tags are load-bearing.
package budget

// DefaultCurrency is used when a budget entry arrives without a moneda field.
const DefaultCurrency = "Bs"

// Collection wraps the presupuestos array returned by the structured
// extraction call (categorized variant). Rendering order equals array order.
type Collection struct {
	Presupuestos []Budget `json:"presupuestos"`
}

// Budget is one categorized cost proposal for an event.
type Budget struct {
	Tipo                 string          `json:"tipo"`
	DatosGenerales       *DatosGenerales `json:"datos_generales,omitempty"`
	Categorias           []Categoria     `json:"categorias"`
	Totales              *Totales        `json:"totales"`
	JustificacionTecnica string          `json:"justificacion_tecnica"`
	Moneda               string          `json:"moneda,omitempty"`
}

// Currency returns the entry's currency, falling back to DefaultCurrency.
func (b Budget) Currency() string {
	if b.Moneda == "" {
		return DefaultCurrency
	}
	return b.Moneda
}

// DatosGenerales carries the event metadata block. All fields are free text
// except Invitados.
type DatosGenerales struct {
	TipoEvento        string `json:"tipo_evento"`
	Ubicacion         string `json:"ubicacion"`
	Fecha             string `json:"fecha"`
	Invitados         int    `json:"invitados"`
	Modalidad         string `json:"modalidad"`
	PresupuestoMaximo string `json:"presupuesto_maximo"`
}

// Categoria groups line items under a named section. SubtotalCategoria is
// caller-supplied and is never reconciled against the sum of its partidas.
type Categoria struct {
	Nombre            string    `json:"nombre"`
	Partidas          []Partida `json:"partidas"`
	SubtotalCategoria float64   `json:"subtotal_categoria"`
}

// Partida is a single line item. Cantidad is free text and PrecioUnitario is
// numeric; both may be null in the extracted payload.
type Partida struct {
	Material       string   `json:"material"`
	Cantidad       *string  `json:"cantidad"`
	PrecioUnitario *float64 `json:"precio_unitario"`
	Proveedor      string   `json:"proveedor"`
	Subtotal       float64  `json:"subtotal"`
}

// Totales holds the aggregate figures of a categorized budget. They are
// displayed verbatim, even when inconsistent with the line items.
type Totales struct {
	Subtotal           float64 `json:"subtotal"`
	Honorarios         float64 `json:"honorarios"`
	CostoTotalEstimado float64 `json:"costo_total_estimado"`
}

// MaterialsCollection wraps the presupuestos array of the flat-materials
// variant.
type MaterialsCollection struct {
	Presupuestos []MaterialsBudget `json:"presupuestos"`
}

// MaterialsBudget is the flat-materials variant: one partidas list with no
// category grouping.
type MaterialsBudget struct {
	Tipo                 string            `json:"tipo"`
	Partidas             []Partida         `json:"partidas"`
	Totales              *MaterialsTotales `json:"totales"`
	JustificacionTecnica string            `json:"justificacion_tecnica"`
	Moneda               string            `json:"moneda,omitempty"`
}

// Currency returns the entry's currency, falling back to DefaultCurrency.
func (b MaterialsBudget) Currency() string {
	if b.Moneda == "" {
		return DefaultCurrency
	}
	return b.Moneda
}

// MaterialsTotales holds the cost summary of a flat-materials budget.
type MaterialsTotales struct {
	Materiales         float64 `json:"materiales"`
	ManoDeObra         float64 `json:"mano_de_obra"`
	Extras             float64 `json:"extras"`
	CostoTotalEstimado float64 `json:"costo_total_estimado"`
}
