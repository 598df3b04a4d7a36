package pipeline

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-silkprint/internal/doctree"
	"github.com/alnah/go-silkprint/internal/warnings"
)

// ResolveImages rewrites local image paths in the tree so the typesetting
// compiler, rooted at sourceDir, can find them. Paths become root-absolute
// ("/img/logo.png"). Images that are missing or lie outside sourceDir are
// left unchanged and reported as ImageNotFound warnings.
//
// Rewrites:
//   - Image nodes
//   - img[src] inside raw HTML blocks and inline HTML
//
// Does NOT rewrite:
//   - URLs (remote images are handled by the emitter)
//   - srcset attributes
//
// If sourceDir is empty, the tree is left unchanged.
func ResolveImages(doc *doctree.Node, sourceDir string, w *warnings.Collector) error {
	if sourceDir == "" {
		return nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	doctree.Walk(doc, func(n *doctree.Node) bool {
		switch n.Kind {
		case doctree.Image:
			n.URL = resolveImage(n.URL, absSourceDir, w)
		case doctree.HTMLBlock, doctree.HTMLInline:
			if strings.Contains(strings.ToLower(n.Literal), "<img") {
				n.Literal = rewriteHTMLImages(n.Literal, absSourceDir, w)
			}
		}
		return true
	})
	return nil
}

// resolveImage returns the root-absolute form of src, or src unchanged when
// it is not a local file under sourceDir.
func resolveImage(src, sourceDir string, w *warnings.Collector) string {
	if !isRelativePath(src) && !filepath.IsAbs(src) {
		return src
	}

	decoded, err := url.PathUnescape(src)
	if err != nil {
		decoded = src
	}

	absPath := decoded
	if !filepath.IsAbs(decoded) {
		absPath = filepath.Join(sourceDir, decoded)
	}

	// Security: the compiler cannot read outside its root
	if !isPathUnderDir(absPath, sourceDir) {
		w.Addf(warnings.ImageNotFound, "image %q is outside the document directory", src)
		return src
	}
	if _, err := os.Stat(absPath); err != nil {
		w.Addf(warnings.ImageNotFound, "image %q not found", src)
		return src
	}

	rel, err := filepath.Rel(sourceDir, absPath)
	if err != nil {
		return src
	}
	return "/" + filepath.ToSlash(rel)
}

// rewriteHTMLImages rewrites img[src] attributes in a raw HTML fragment.
// The fragment is tokenized rather than parsed so unbalanced tags, which
// are common in inline HTML split across nodes, survive untouched.
func rewriteHTMLImages(fragment, sourceDir string, w *warnings.Collector) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			b.WriteString(raw)
			continue
		}
		tok := z.Token()
		if tok.Data != "img" {
			b.WriteString(raw)
			continue
		}
		changed := false
		for i, attr := range tok.Attr {
			if attr.Key != "src" {
				continue
			}
			if resolved := resolveImage(attr.Val, sourceDir, w); resolved != attr.Val {
				tok.Attr[i].Val = resolved
				changed = true
			}
		}
		if !changed {
			b.WriteString(raw)
			continue
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	// Skip anchors
	if strings.HasPrefix(path, "#") {
		return false
	}

	// Skip absolute paths
	if filepath.IsAbs(path) {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	// Path is under dir if it starts with dir/ or equals dir
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}
