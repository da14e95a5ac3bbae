// Package report builds the abstract printable document for a budget
// collection and hands it to the rendering collaborator. The document model is
// renderer-agnostic: blocks, tables and a style dictionary, nothing about
// fonts or pagination internals.
package report

// Node is one content block of a document.
type Node interface {
	node()
}

// Document is the full printable structure handed to the renderer.
type Document struct {
	Header  *Text           `json:"header,omitempty"`
	Content []Node          `json:"content"`
	Styles  StyleDictionary `json:"styles"`
}

// Text is a styled text block.
type Text struct {
	Value     string `json:"text"`
	Style     string `json:"style,omitempty"`
	Alignment string `json:"alignment,omitempty"`
	Margin    []int  `json:"margin,omitempty"`
}

// Image references a static asset by path.
type Image struct {
	Path   string `json:"image"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Columns lays its items out side by side.
type Columns struct {
	Items []Node `json:"columns"`
}

// Divider is a horizontal rule between budget entries.
type Divider struct{}

// Stack groups nodes vertically under a shared style.
type Stack struct {
	Items []Node `json:"stack"`
	Style string `json:"style,omitempty"`
}

// Cell is one table cell. ColSpan zero means a single column.
type Cell struct {
	Text    string `json:"text"`
	Style   string `json:"style,omitempty"`
	ColSpan int    `json:"colSpan,omitempty"`
}

// Table is a table block. Widths uses "*" for flexible and "auto" for
// content-sized columns, or percentage strings.
type Table struct {
	Widths     []string `json:"widths"`
	HeaderRows int      `json:"headerRows"`
	Body       [][]Cell `json:"body"`
	Layout     string   `json:"layout,omitempty"`
	Style      string   `json:"style,omitempty"`
}

func (*Text) node()    {}
func (*Image) node()   {}
func (*Columns) node() {}
func (*Divider) node() {}
func (*Stack) node()   {}
func (*Table) node()   {}

// Style describes one named entry of the style dictionary.
type Style struct {
	FontSize  int    `json:"fontSize,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italics   bool   `json:"italics,omitempty"`
	Color     string `json:"color,omitempty"`
	FillColor string `json:"fillColor,omitempty"`
	Margin    []int  `json:"margin,omitempty"`
}

// StyleDictionary maps style tags to their definitions.
type StyleDictionary map[string]Style
