// Package frontmatter splits a leading YAML block fenced by "---" lines off a
// Markdown document and decodes the document settings it carries.
package frontmatter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-silkprint/internal/dateutil"
	"github.com/alnah/go-silkprint/internal/warnings"
	"github.com/alnah/go-silkprint/internal/yamlutil"
)

// ErrFrontMatter indicates a front matter block that is not valid YAML or
// carries values of the wrong type or range.
var ErrFrontMatter = errors.New("invalid front matter")

const delimiter = "---"

// FrontMatter holds the recognized keys. Absent keys stay at their zero
// value; TOC is a pointer so that "toc: false" can override a default.
type FrontMatter struct {
	Title     string `yaml:"title"`
	Subtitle  string `yaml:"subtitle"`
	Author    string `yaml:"author"`
	Date      string `yaml:"date"`
	Lang      string `yaml:"lang"`
	Theme     string `yaml:"theme"`
	Paper     string `yaml:"paper" validate:"omitempty,oneof=a4 A4 letter Letter a5 A5 legal Legal"`
	TOC       *bool  `yaml:"toc"`
	TOCDepth  int    `yaml:"toc-depth" validate:"omitempty,min=1,max=6"`
	Numbering string `yaml:"numbering"`
	FontSize  string `yaml:"font-size"`
}

var known = map[string]bool{
	"title": true, "subtitle": true, "author": true, "date": true,
	"lang": true, "theme": true, "paper": true, "toc": true,
	"toc-depth": true, "numbering": true, "font-size": true,
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("yaml")
	})
	return v
}()

// Extract returns the front matter of input and the remaining body. Input
// without an opening "---" line, or without a closing one, has no front
// matter and is returned whole. Unknown keys are reported to w.
func Extract(input string, w *warnings.Collector) (*FrontMatter, string, error) {
	trimmed := strings.TrimLeft(input, " \t\r\n")
	if !strings.HasPrefix(trimmed, delimiter) {
		return nil, input, nil
	}
	rest := strings.TrimLeft(trimmed[len(delimiter):], "\r\n")

	var block, body string
	if strings.HasPrefix(rest, delimiter) {
		body = rest[len(delimiter):]
	} else {
		end := strings.Index(rest, "\n"+delimiter)
		if end < 0 {
			return nil, input, nil
		}
		block, body = rest[:end], rest[end+1+len(delimiter):]
	}
	body = strings.TrimLeft(body, "\r\n")

	fm, err := decode(block, w)
	if err != nil {
		return nil, "", err
	}
	return fm, body, nil
}

func decode(block string, w *warnings.Collector) (*FrontMatter, error) {
	fm := &FrontMatter{}
	if strings.TrimSpace(block) == "" {
		return fm, nil
	}

	data := []byte(block)
	keys, err := yamlutil.Keys(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFrontMatter, yamlutil.FormatError(err))
	}
	if err := yamlutil.Unmarshal(data, fm); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFrontMatter, yamlutil.FormatError(err))
	}
	if err := validate.Struct(fm); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFrontMatter, describe(err))
	}

	for _, key := range keys {
		if !known[key] {
			w.Addf(warnings.UnrecognizedFrontMatter, "unrecognized front matter key %q", key)
		}
	}
	return fm, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s: %v is not one of %s", field, fe.Value(), fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s: %v must be between 1 and 6", field, fe.Value())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}

// ResolveDate expands an "auto" date against now.
func (fm *FrontMatter) ResolveDate(now time.Time) error {
	if fm == nil || fm.Date == "" {
		return nil
	}
	date, err := dateutil.Resolve(fm.Date, now)
	if err != nil {
		return fmt.Errorf("%w: date: %w", ErrFrontMatter, err)
	}
	fm.Date = date
	return nil
}
