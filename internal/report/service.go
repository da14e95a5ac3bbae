package report

import (
	"io"

	"github.com/presupuestosam/internal/budget"
)

// Handle is the opaque output produced by the rendering collaborator. Its only
// capabilities are emitting the rendered bytes and carrying a title.
type Handle interface {
	SetTitle(title string)
	WriteTo(w io.Writer) (int64, error)
}

// Renderer consumes an assembled document and produces binary output. The
// actual PDF engine lives outside this module.
type Renderer interface {
	Render(doc *Document) (Handle, error)
}

// Service picks the assembler variant for a request and hands the tree to the
// renderer.
type Service struct {
	printer Renderer
}

func NewService(printer Renderer) *Service {
	return &Service{printer: printer}
}

// BillReport renders the flat-materials report.
func (s *Service) BillReport(data budget.MaterialsCollection) (Handle, error) {
	doc, err := BillReport(data)
	if err != nil {
		return nil, err
	}
	handle, err := s.printer.Render(doc)
	if err != nil {
		return nil, err
	}
	handle.SetTitle("Reporte de Presupuestos")
	return handle, nil
}

// BillEventReport renders the categorized event report.
func (s *Service) BillEventReport(data budget.Collection) (Handle, error) {
	doc, err := BillEventReport(data)
	if err != nil {
		return nil, err
	}
	handle, err := s.printer.Render(doc)
	if err != nil {
		return nil, err
	}
	handle.SetTitle("Reporte de Eventos")
	return handle, nil
}
