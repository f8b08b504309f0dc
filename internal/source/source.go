package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Loader extracts raw itinerary lines from an uploaded or exported file.
// Lines come back in document order; blank lines may be present.
type Loader interface {
	Load(r io.Reader, filename string) ([]string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".json":     true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes loaders that shell out or need fallbacks.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		return &TextLoader{}, nil
	case ".json":
		return &JSONLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
