// Package cfg parses and evaluates the `cfg(...)` predicates used as keys of
// `[target.'cfg(...)'.dependencies]` tables.
package cfg

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
)

// An ExprKind is the syntactic form of an Expr.
type ExprKind int

const (
	Word      ExprKind = iota // unix
	NameValue                 // target_os = "linux"
	List                      // any(...), all(...), not(...)
	Lit                       // a bare literal argument
)

// A LiteralKind is the type of a Literal.
type LiteralKind int

const (
	String LiteralKind = iota
	Int
	Float
	Bool
	Char
)

// A Literal is a literal value. For strings, Text is the unquoted value;
// otherwise it is the literal as written.
type Literal struct {
	Kind LiteralKind
	Text string
}

func (l Literal) String() string {
	if l.Kind == String {
		return strconv.Quote(l.Text)
	}
	return l.Text
}

// An Expr is a parsed cfg predicate.
type Expr struct {
	Kind  ExprKind
	Path  []string // Word, NameValue, List
	Value Literal  // NameValue, Lit
	Args  []Expr   // List
}

// Ident returns the name of e when its path is a single identifier.
func (e Expr) Ident() (string, bool) {
	if len(e.Path) != 1 {
		return "", false
	}
	return e.Path[0], true
}

func (e Expr) String() string {
	path := strings.Join(e.Path, "::")
	switch e.Kind {
	case Word:
		return path
	case NameValue:
		return path + " = " + e.Value.String()
	case List:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = arg.String()
		}
		return path + "(" + strings.Join(args, ", ") + ")"
	case Lit:
		return e.Value.String()
	}
	return ""
}

// A SyntaxError is returned when a cfg predicate cannot be parsed.
type SyntaxError struct {
	Text   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid cfg predicate %q at offset %d: %s", e.Text, e.Offset, e.Msg)
}

// Parse parses a complete `cfg(...)` predicate.
func Parse(text string) (Expr, error) {
	p := newParser(text)
	root := p.meta()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %s after predicate", p.describe())
	}
	if p.err == nil {
		name, ok := root.Ident()
		if root.Kind != List || !ok || name != "cfg" {
			p.err = &SyntaxError{Text: text, Offset: 0, Msg: "predicate must have the form cfg(...)"}
		}
	}
	if p.err != nil {
		return Expr{}, p.err
	}
	return root, nil
}

type parser struct {
	s    scanner.Scanner
	text string
	tok  rune
	err  error
}

func newParser(text string) *parser {
	p := &parser{text: text}
	p.s.Init(strings.NewReader(text))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanChars | scanner.ScanStrings
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}
	p.next()
	return p
}

func (p *parser) next() {
	p.tok = p.s.Scan()
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{
		Text:   p.text,
		Offset: p.s.Position.Offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) describe() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(p.s.TokenText())
}

// nested parses a list argument, which is either a literal or a meta item.
func (p *parser) nested() Expr {
	if lit, ok := p.literal(); ok {
		return Expr{Kind: Lit, Value: lit}
	}
	return p.meta()
}

func (p *parser) meta() Expr {
	path := p.path()
	if p.err != nil {
		return Expr{}
	}

	switch p.tok {
	case '(':
		p.next()
		var args []Expr
		for p.err == nil && p.tok != ')' {
			args = append(args, p.nested())
			if p.err != nil {
				break
			}
			if p.tok == ',' {
				p.next()
				continue
			}
			if p.tok != ')' {
				p.fail("expected ',' or ')', found %s", p.describe())
			}
		}
		p.next()
		return Expr{Kind: List, Path: path, Args: args}
	case '=':
		p.next()
		lit, ok := p.literal()
		if !ok {
			p.fail("expected literal after '=', found %s", p.describe())
		}
		return Expr{Kind: NameValue, Path: path, Value: lit}
	}
	return Expr{Kind: Word, Path: path}
}

func (p *parser) path() []string {
	if p.tok != scanner.Ident {
		p.fail("expected identifier, found %s", p.describe())
		return nil
	}
	path := []string{p.s.TokenText()}
	p.next()
	for p.tok == ':' {
		p.next()
		if p.tok != ':' {
			p.fail("expected '::', found %s", p.describe())
			return nil
		}
		p.next()
		if p.tok != scanner.Ident {
			p.fail("expected identifier after '::', found %s", p.describe())
			return nil
		}
		path = append(path, p.s.TokenText())
		p.next()
	}
	return path
}

// literal consumes a literal token if there is one.
func (p *parser) literal() (Literal, bool) {
	text := p.s.TokenText()
	var lit Literal
	switch p.tok {
	case scanner.String:
		value, err := strconv.Unquote(text)
		if err != nil {
			p.fail("invalid string literal %s", text)
			return Literal{}, false
		}
		lit = Literal{Kind: String, Text: value}
	case scanner.Int:
		lit = Literal{Kind: Int, Text: text}
	case scanner.Float:
		lit = Literal{Kind: Float, Text: text}
	case scanner.Char:
		lit = Literal{Kind: Char, Text: text}
	case scanner.Ident:
		if text != "true" && text != "false" {
			return Literal{}, false
		}
		lit = Literal{Kind: Bool, Text: text}
	default:
		return Literal{}, false
	}
	p.next()
	return lit, true
}
