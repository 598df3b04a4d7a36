// Package warnings collects non-fatal diagnostics produced while resolving a
// theme or emitting a document. Warnings never abort a render; they are
// returned to the caller in the order they were raised.
package warnings

import (
	"fmt"
	"sync"
)

// Kind classifies a warning.
type Kind int

const (
	// ContrastRatio reports a color pair below its WCAG minimum.
	ContrastRatio Kind = iota + 1
	// FootnoteNotFound reports a reference to an undefined footnote.
	FootnoteNotFound
	// UnknownLanguage reports a fenced code block tagged with an unknown language.
	UnknownLanguage
	// RemoteImageSkipped reports a remote image replaced by its alt text.
	RemoteImageSkipped
	// UnsupportedHTMLTag reports an HTML tag rendered as its children only.
	UnsupportedHTMLTag
	// UnrecognizedFrontMatter reports a front matter key that is not understood.
	UnrecognizedFrontMatter
	// FontDirNotFound reports a configured font directory that does not exist.
	FontDirNotFound
	// ImageNotFound reports a local image missing from the source directory.
	ImageNotFound
)

var kindNames = map[Kind]string{
	ContrastRatio:           "contrast",
	FootnoteNotFound:        "footnote",
	UnknownLanguage:         "language",
	RemoteImageSkipped:      "remote-image",
	UnsupportedHTMLTag:      "html",
	UnrecognizedFrontMatter: "front-matter",
	FontDirNotFound:         "font-dir",
	ImageNotFound:           "image",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Warning is a single diagnostic.
type Warning struct {
	Kind    Kind
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}

// Collector accumulates warnings. The zero value is ready to use and safe for
// concurrent use. A nil *Collector discards everything.
type Collector struct {
	mu    sync.Mutex
	items []Warning
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{}
}

// Add records a warning.
func (c *Collector) Add(kind Kind, message string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = append(c.items, Warning{Kind: kind, Message: message})
	c.mu.Unlock()
}

// Addf records a formatted warning.
func (c *Collector) Addf(kind Kind, format string, args ...any) {
	c.Add(kind, fmt.Sprintf(format, args...))
}

// Items returns a copy of the recorded warnings in insertion order.
func (c *Collector) Items() []Warning {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Messages returns the recorded warning messages in insertion order.
func (c *Collector) Messages() []string {
	items := c.Items()
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Message
	}
	return out
}
