package viewer

import (
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"golang.org/x/net/html"
)

// declaration is one "property: value" pair of an inline style.
type declaration struct {
	prop  string
	value string
}

// parseStyle reads an inline style attribute into declarations, keeping
// their order. Later duplicates win, as in CSS. Quoted strings, url(...) and
// other parenthesized values are kept whole; malformed declarations are
// dropped.
func parseStyle(s string) []declaration {
	var decls []declaration
	p := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(p.Err(), io.EOF) {
				return decls
			}
			tracer().Debugf("skipping malformed style declaration: %v", p.Err())
		case css.DeclarationGrammar:
			decls = setDeclaration(decls, strings.ToLower(string(data)), joinValues(p.Values()))
		case css.CustomPropertyGrammar:
			// custom properties are case sensitive
			decls = setDeclaration(decls, string(data), joinValues(p.Values()))
		}
	}
}

func joinValues(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

func setDeclaration(decls []declaration, prop, value string) []declaration {
	for i := range decls {
		if decls[i].prop == prop {
			if value == "" {
				return append(decls[:i], decls[i+1:]...)
			}
			decls[i].value = value
			return decls
		}
	}
	if value == "" {
		return decls
	}
	return append(decls, declaration{prop: prop, value: value})
}

func lookupDeclaration(decls []declaration, prop string) string {
	for _, d := range decls {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

func formatStyle(decls []declaration) string {
	var b strings.Builder
	for i, d := range decls {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(d.prop)
		b.WriteString(": ")
		b.WriteString(d.value)
		b.WriteString(";")
	}
	return b.String()
}

// SetNodeStyle edits one inline style property of an element that is not
// owned by a Handle, such as a placeholder being hidden.
func SetNodeStyle(n *html.Node, prop, value string) {
	s, _ := getAttr(n, "style")
	decls := setDeclaration(parseStyle(s), prop, value)
	if len(decls) == 0 {
		removeAttr(n, "style")
		return
	}
	setAttr(n, "style", formatStyle(decls))
}

// NodeStyle reads one inline style property of an element.
func NodeStyle(n *html.Node, prop string) string {
	s, _ := getAttr(n, "style")
	return lookupDeclaration(parseStyle(s), prop)
}
