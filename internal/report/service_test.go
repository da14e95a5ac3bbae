package report

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presupuestosam/internal/budget"
)

type fakeHandle struct {
	title string
}

func (h *fakeHandle) SetTitle(title string)            { h.title = title }
func (h *fakeHandle) WriteTo(io.Writer) (int64, error) { return 0, nil }

type fakeRenderer struct {
	doc *Document
}

func (r *fakeRenderer) Render(doc *Document) (Handle, error) {
	r.doc = doc
	return &fakeHandle{}, nil
}

func TestServiceTitles(t *testing.T) {
	pinClock(t)
	renderer := &fakeRenderer{}
	svc := NewService(renderer)

	handle, err := svc.BillEventReport(budget.Collection{})
	require.NoError(t, err)
	assert.Equal(t, "Reporte de Eventos", handle.(*fakeHandle).title)

	handle, err = svc.BillReport(budget.MaterialsCollection{})
	require.NoError(t, err)
	assert.Equal(t, "Reporte de Presupuestos", handle.(*fakeHandle).title)
	assert.NotNil(t, renderer.doc)
}
