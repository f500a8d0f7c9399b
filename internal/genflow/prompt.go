package genflow

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

var promptFuncs = template.FuncMap{
	// last reports whether index i is the final position of a sequence of length n.
	"last": func(i, n int) bool { return i == n-1 },
	// number renders a float in its shortest form: 3500, 2.5.
	"number": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	// optional renders an absent value as the empty string.
	"optional": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// Prompt is a parsed instruction template. User text is interpolated verbatim.
type Prompt struct {
	name string
	tmpl *template.Template
}

func NewPrompt(name, text string) (*Prompt, error) {
	tmpl, err := template.New(name).Funcs(promptFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt %s: %w", name, err)
	}
	return &Prompt{name: name, tmpl: tmpl}, nil
}

// MustPrompt is NewPrompt for package-level templates; it panics on a parse error.
func MustPrompt(name, text string) *Prompt {
	p, err := NewPrompt(name, text)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Prompt) Name() string { return p.name }

// Compile renders data into the instruction string.
func (p *Prompt) Compile(data any) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("compile prompt %s: %w", p.name, err)
	}
	return b.String(), nil
}
