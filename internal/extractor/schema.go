package extractor

import "github.com/sashabaranov/go-openai/jsonschema"

const (
	functionName        = "generar_presupuestos"
	functionDescription = "Extrae el presupuesto del texto y lo devuelve en formato estructurado."

	systemPrompt = `Eres un servicio que recibe un bloque de texto con información de presupuesto para eventos y lo convierte a formato JSON estructurado. El texto incluye secciones como datos generales, categorías de gastos (marcadas con 🔹), partidas individuales, resumen general (✅) y justificación técnica (📌).

Tu tarea es extraer toda esta información y organizarla en la estructura JSON especificada.`
)

// budgetSchema declares the strict output shape of the extraction call: the
// categorized budget variant wrapped in a required presupuestos array.
func budgetSchema() jsonschema.Definition {
	partida := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"material":        {Type: jsonschema.String},
			"cantidad":        {Type: jsonschema.String},
			"precio_unitario": {Type: jsonschema.Number},
			"proveedor":       {Type: jsonschema.String},
			"subtotal":        {Type: jsonschema.Number},
		},
	}

	categoria := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"nombre":             {Type: jsonschema.String},
			"partidas":           {Type: jsonschema.Array, Items: &partida},
			"subtotal_categoria": {Type: jsonschema.Number},
		},
	}

	presupuesto := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"tipo": {Type: jsonschema.String},
			"datos_generales": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"tipo_evento":        {Type: jsonschema.String},
					"ubicacion":          {Type: jsonschema.String},
					"fecha":              {Type: jsonschema.String},
					"invitados":          {Type: jsonschema.Number},
					"modalidad":          {Type: jsonschema.String},
					"presupuesto_maximo": {Type: jsonschema.String},
				},
			},
			"categorias": {Type: jsonschema.Array, Items: &categoria},
			"totales": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"subtotal":             {Type: jsonschema.Number},
					"honorarios":           {Type: jsonschema.Number},
					"costo_total_estimado": {Type: jsonschema.Number},
				},
			},
			"justificacion_tecnica": {Type: jsonschema.String},
			"moneda":                {Type: jsonschema.String},
		},
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"presupuestos": {Type: jsonschema.Array, Items: &presupuesto},
		},
		Required: []string{"presupuestos"},
	}
}
