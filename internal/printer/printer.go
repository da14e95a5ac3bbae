// Package printer is the client side of the rendering collaborator boundary:
// it ships an assembled document tree to the external rendering service and
// returns the binary output as an opaque handle.
package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/presupuestosam/internal/report"
)

const defaultTimeout = 30 * time.Second

// Printer renders documents through the external rendering service.
type Printer struct {
	url    string
	client *http.Client
}

func New(url string) *Printer {
	return &Printer{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// Render posts the document definition and buffers the rendered bytes.
func (p *Printer) Render(doc *report.Document) (report.Handle, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(body))
	}

	output, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered output: %w", err)
	}

	log.Debug().Int("bytes", len(output)).Msg("Document rendered")
	return &handle{content: output}, nil
}

// handle buffers one rendered document for the duration of a request.
type handle struct {
	title   string
	content []byte
}

func (h *handle) SetTitle(title string) { h.title = title }

func (h *handle) Title() string { return h.title }

func (h *handle) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.content)
	return int64(n), err
}
