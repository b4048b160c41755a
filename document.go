package p2p2p

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-p2p2p/internal/fileutil"
)

// Diagram identification.
const (
	PlantUMLLanguageID = "plantuml"
	PlantUMLExtension  = ".puml"
)

// Document describes the source an export is requested for.
// It stands in for an editor buffer: Dirty documents carry their unsaved
// Content, which a Saver persists before the export reads the file.
type Document struct {
	Path       string
	LanguageID string // declared content type, e.g. "plantuml"
	Untitled   bool   // never saved to disk
	Dirty      bool   // has edits newer than the file on disk
	Content    []byte // unsaved content, only meaningful when Dirty
}

// DocumentFromPath returns a saved, clean document for a file on disk.
func DocumentFromPath(path string) *Document {
	return &Document{Path: path}
}

// Saver persists unsaved document edits.
type Saver interface {
	Save(ctx context.Context, doc *Document) error
}

// FileSaver writes a dirty document's content to its path.
type FileSaver struct{}

// Save writes doc.Content to doc.Path and marks the document clean.
// A dirty document without Content is rejected so the file on disk is
// never truncated.
func (FileSaver) Save(_ context.Context, doc *Document) error {
	if doc.Content == nil {
		return fmt.Errorf("%w: %s has no unsaved content", ErrSaveDocument, doc.Path)
	}
	if err := os.WriteFile(doc.Path, doc.Content, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveDocument, err)
	}
	doc.Dirty = false
	return nil
}

// IsDiagramFile reports whether the document is a PlantUML source, either by
// declared language or by its .puml extension (case-insensitive).
func IsDiagramFile(doc *Document) bool {
	if doc == nil {
		return false
	}
	return doc.LanguageID == PlantUMLLanguageID ||
		strings.ToLower(filepath.Ext(doc.Path)) == PlantUMLExtension
}

// ShowExportAction reports whether an export trigger (status-bar item,
// menu entry) should be visible for the current document.
func ShowExportAction(doc *Document) bool {
	return doc != nil && !doc.Untitled && IsDiagramFile(doc)
}

// ValidateDocument checks that doc can be exported. It touches neither the
// temp directory nor any external process.
func ValidateDocument(doc *Document) error {
	if doc == nil || doc.Path == "" {
		return ErrNoDocument
	}
	if doc.Untitled {
		return ErrUntitled
	}
	if !IsDiagramFile(doc) {
		return fmt.Errorf("%w: got %q", ErrNotDiagram, filepath.Ext(doc.Path))
	}
	return nil
}
