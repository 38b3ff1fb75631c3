// Package panel provides the display surfaces rendered pages are shown on.
package panel

import (
	_ "embed"
	"sync"
)

// StylesheetPath is where the server serves the embedded stylesheet.
const StylesheetPath = "/style.css"

//go:embed assets/style.css
var stylesheet []byte

// Stylesheet returns the embedded HN stylesheet.
func Stylesheet() []byte {
	return stylesheet
}

// Surface displays a rendered HTML document.
type Surface interface {
	// Show replaces the displayed document.
	Show(title, html string) error
	// ShowError reports a failure to the user.
	ShowError(msg string)
	// StylesheetURI is the stylesheet reference pages should embed.
	StylesheetURI() string
}

// Recorder is an in-memory Surface. It keeps the last document and every
// reported error.
type Recorder struct {
	Style string

	mu     sync.Mutex
	title  string
	html   string
	shows  int
	errors []string
}

// NewRecorder creates a Recorder whose pages reference style.
func NewRecorder(style string) *Recorder {
	return &Recorder{Style: style}
}

func (r *Recorder) Show(title, html string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.title = title
	r.html = html
	r.shows++
	return nil
}

func (r *Recorder) ShowError(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) StylesheetURI() string { return r.Style }

// Page returns the last shown title and document.
func (r *Recorder) Page() (title, html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.title, r.html
}

// Shows returns how many documents have been shown.
func (r *Recorder) Shows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shows
}

// Errors returns the reported error messages in order.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}
