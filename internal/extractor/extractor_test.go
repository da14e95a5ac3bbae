package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presupuestosam/internal/assistant"
	"github.com/presupuestosam/internal/report"
)

// stubCompleter returns canned function-call arguments and records the request.
type stubCompleter struct {
	args string
	err  error
	got  assistant.CompletionRequest
}

func (s *stubCompleter) CreateStructuredCompletion(ctx context.Context, req assistant.CompletionRequest) (string, error) {
	s.got = req
	return s.args, s.err
}

func TestLatestAssistantReplyNone(t *testing.T) {
	messages := []assistant.Message{
		{Role: assistant.RoleUser, Parts: []assistant.ContentPart{{Kind: "text", Text: "hola"}}},
		{Role: assistant.RoleUser, Parts: []assistant.ContentPart{{Kind: "text", Text: "¿precio?"}}},
	}

	_, ok := LatestAssistantReply(messages)
	assert.False(t, ok)
}

func TestLatestAssistantReplyPicksLast(t *testing.T) {
	messages := []assistant.Message{
		{Role: assistant.RoleUser, Parts: []assistant.ContentPart{{Kind: "text", Text: "hola"}}},
		{Role: assistant.RoleAssistant, Parts: []assistant.ContentPart{{Kind: "text", Text: "primera respuesta"}}},
		{Role: assistant.RoleUser, Parts: []assistant.ContentPart{{Kind: "text", Text: "otra pregunta"}}},
		{Role: assistant.RoleAssistant, Parts: []assistant.ContentPart{
			{Kind: "text", Text: "presupuesto final【4:0†source】"},
			{Kind: "image_file", Text: ""},
			{Kind: "text", Text: "segunda línea"},
		}},
	}

	text, ok := LatestAssistantReply(messages)
	require.True(t, ok)
	assert.Equal(t, "presupuesto final\nsegunda línea", text)
}

func TestNormalize(t *testing.T) {
	raw := "### Presupuesto\nantes ```json\n{\"x\":1}\n``` después【1:2†source】\n"

	clean := Normalize(raw)
	assert.Equal(t, "antes  después", clean)

	// Normalizing already-clean text changes nothing.
	assert.Equal(t, clean, Normalize(clean))
}

const sillasJSON = `{
  "presupuestos": [
    {
      "tipo": "Presupuesto Económico",
      "categorias": [
        {
          "nombre": "Mobiliario",
          "partidas": [
            {
              "material": "Sillas",
              "cantidad": "50",
              "precio_unitario": 20,
              "proveedor": "ProveedorX",
              "subtotal": 1000
            }
          ],
          "subtotal_categoria": 1000
        }
      ],
      "totales": {
        "subtotal": 1000,
        "honorarios": 100,
        "costo_total_estimado": 1100
      },
      "justificacion_tecnica": "Opción de menor costo."
    }
  ]
}`

func TestExtractBudgetsRoundTrip(t *testing.T) {
	stub := &stubCompleter{args: sillasJSON}
	e := New(stub)

	raw := "### Resumen\naquí está tu presupuesto【4:0†source】\n```json\n{ignorado}\n```"
	collection, err := e.ExtractBudgets(context.Background(), raw)
	require.NoError(t, err)

	// The completion receives the cleaned text and the forced function name.
	assert.Equal(t, "aquí está tu presupuesto", stub.got.UserText)
	assert.Equal(t, "generar_presupuestos", stub.got.FunctionName)

	require.Len(t, collection.Presupuestos, 1)
	p := collection.Presupuestos[0]
	assert.Equal(t, "Presupuesto Económico", p.Tipo)
	require.NotNil(t, p.Totales)
	assert.Equal(t, 1100.0, p.Totales.CostoTotalEstimado)

	// The extracted collection assembles into a document whose line item row
	// carries the values verbatim.
	doc, err := report.BillEventReport(collection)
	require.NoError(t, err)

	row := findRow(doc, "Sillas")
	require.NotNil(t, row, "line item row not found in document")
	texts := make([]string, len(row))
	for i, cell := range row {
		texts[i] = cell.Text
	}
	assert.Equal(t, []string{"Sillas", "50", "20", "ProveedorX", "1000"}, texts)
}

func TestExtractBudgetsRepairsJSON(t *testing.T) {
	// Trailing comma: invalid for encoding/json, fixable by the repair pass.
	stub := &stubCompleter{args: `{"presupuestos": [],}`}
	e := New(stub)

	collection, err := e.ExtractBudgets(context.Background(), "texto")
	require.NoError(t, err)
	assert.NotNil(t, collection.Presupuestos)
	assert.Empty(t, collection.Presupuestos)
}

func TestExtractBudgetsParseError(t *testing.T) {
	stub := &stubCompleter{args: "esto no es json"}
	e := New(stub)

	_, err := e.ExtractBudgets(context.Background(), "texto")

	var parseErr *ExtractionParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExtractBudgetsSchemaMismatch(t *testing.T) {
	stub := &stubCompleter{args: `{}`}
	e := New(stub)

	_, err := e.ExtractBudgets(context.Background(), "texto")

	var mismatchErr *SchemaMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, []string{"presupuestos"}, mismatchErr.Missing)
}

func TestExtractBudgetsProviderError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("upstream down")}
	e := New(stub)

	_, err := e.ExtractBudgets(context.Background(), "texto")

	var providerErr *assistant.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, "structured-completion", providerErr.Op)
}

// findRow walks every table in the document and returns the first row whose
// leading cell matches.
func findRow(doc *report.Document, first string) []report.Cell {
	var walk func(nodes []report.Node) []report.Cell
	walk = func(nodes []report.Node) []report.Cell {
		for _, node := range nodes {
			switch n := node.(type) {
			case *report.Table:
				for _, row := range n.Body {
					if len(row) > 0 && row[0].Text == first {
						return row
					}
				}
			case *report.Stack:
				if row := walk(n.Items); row != nil {
					return row
				}
			}
		}
		return nil
	}
	return walk(doc.Content)
}
