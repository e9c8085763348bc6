package app

import (
	"os"
	"path/filepath"

	"github.com/dshills/cursorkit/internal/engine"
)

// Document is a file loaded into an engine.
type Document struct {
	// Path is the file path (empty for scratch documents).
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	// Engine holds the text and selections.
	Engine *engine.Engine

	original string
}

// NewDocument creates a document over content.
func NewDocument(path, content string, opts ...engine.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	eng := engine.New(append([]engine.Option{engine.WithContent(content)}, opts...)...)
	return &Document{
		Path:     path,
		Name:     name,
		Engine:   eng,
		original: eng.Text(),
	}
}

// OpenDocument reads path into a new document.
func OpenDocument(path string, opts ...engine.Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	defer f.Close()

	eng, err := engine.NewFromReader(f, opts...)
	if err != nil {
		return nil, NewOperationError("read", path, err)
	}
	return &Document{
		Path:     path,
		Name:     filepath.Base(path),
		Engine:   eng,
		original: eng.Text(),
	}, nil
}

// Original returns the text as it was loaded.
func (d *Document) Original() string {
	return d.original
}

// Modified reports whether the text differs from what was loaded.
func (d *Document) Modified() bool {
	return d.Engine.Text() != d.original
}
