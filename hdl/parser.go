package hdl

import (
	"fmt"
	"io"
	"strings"

	"logsim/internal/lex"
)

// Parse consumes source text and returns the abstract description plus
// the diagnostics collected on the way. Lexical errors and malformed
// attributes inside a device statement are recorded and recovered from;
// a structural error (missing or misordered block, unmatched
// punctuation) is fatal to the file and yields a nil File.
//
func Parse(r io.Reader) (*File, []Diag) {
	p := &parser{l: Lexer(r)}
	p.next()
	f := p.file()
	return f, p.diags
}

// ParseString is Parse over an in-memory source string.
//
func ParseString(src string) (*File, []Diag) {
	return Parse(strings.NewReader(src))
}

type parser struct {
	l     *lex.Lexer
	tok   lex.Item
	diags []Diag
}

// next advances to the next token, recording a Lexical diagnostic for
// every Illegal item and resuming after it so that later errors in the
// same file are also reported.
func (p *parser) next() {
	for {
		p.tok = p.l.Lex()
		if p.tok.Type != Illegal {
			return
		}
		msg := p.tok.String()
		if _, ok := p.tok.Value.(rune); ok {
			msg = fmt.Sprintf("unrecognized character %q", msg)
		}
		p.diags = append(p.diags, Diag{Code: Lexical, Msg: msg, Pos: p.tok.Pos})
	}
}

func (p *parser) syntaxErr(msg string) {
	p.diags = append(p.diags, Diag{Code: Syntax, Msg: msg, Pos: p.tok.Pos})
}

func (p *parser) syntaxErrf(format string, args ...interface{}) {
	p.syntaxErr(fmt.Sprintf(format, args...))
}

// expect consumes the current token if it matches, or records a fatal
// syntax diagnostic.
func (p *parser) expect(t lex.Type, what string) bool {
	if p.tok.Type != t {
		p.syntaxErrf("expected %s, found %q", what, p.tok)
		return false
	}
	p.next()
	return true
}

func (p *parser) expectKeyword(kw string) bool {
	if p.tok.Type != Keyword || p.tok.Value != kw {
		p.syntaxErrf("expected %q, found %q", kw, p.tok)
		return false
	}
	p.next()
	return true
}

func (p *parser) atKeyword(kw string) bool {
	return p.tok.Type == Keyword && p.tok.Value == kw
}

// file parses the three blocks in their fixed order.
func (p *parser) file() *File {
	f := &File{}
	if !p.block("devices", func() bool { return p.deviceStmt(f) }) {
		return nil
	}
	if !p.block("connections", func() bool { return p.connStmt(f) }) {
		return nil
	}
	if !p.block("monitors", func() bool { return p.monitorStmt(f) }) {
		return nil
	}
	if p.tok.Type != EOF {
		p.syntaxErrf("expected end of file, found %q", p.tok)
		return nil
	}
	return f
}

// block parses `begin <name>: stmt* end <name>;`.
func (p *parser) block(name string, stmt func() bool) bool {
	if !p.expectKeyword("begin") || !p.expectKeyword(name) || !p.expect(Colon, "':'") {
		return false
	}
	for !p.atKeyword("end") {
		if p.tok.Type == EOF {
			p.syntaxErrf("missing \"end %s\"", name)
			return false
		}
		if !stmt() {
			return false
		}
	}
	p.next() // end
	return p.expectKeyword(name) && p.expect(Semicolon, "';'")
}

// deviceStmt parses `KIND name [: attr = value {, attr = value}] ;`.
// Malformed attributes are each reported and skipped (recovery at ','
// or ';'); missing structure around them remains fatal.
func (p *parser) deviceStmt(f *File) bool {
	if p.tok.Type != Ident {
		p.syntaxErrf("expected device kind, found %q", p.tok)
		return false
	}
	d := DeviceDecl{Kind: p.tok.String(), KindPos: p.tok.Pos}
	p.next()
	if p.tok.Type != Ident {
		p.syntaxErrf("expected device name, found %q", p.tok)
		return false
	}
	d.Name = p.tok.String()
	d.NamePos = p.tok.Pos
	p.next()

	if p.tok.Type == Colon {
		for {
			p.next() // past ':' or ','
			if a, ok := p.attr(); ok {
				d.Attrs = append(d.Attrs, a)
			}
			if p.tok.Type != Comma {
				break
			}
		}
	}
	if !p.expect(Semicolon, "';'") {
		return false
	}
	f.Devices = append(f.Devices, d)
	return true
}

// attr parses one `name = value` pair. On malformation it records a
// non-fatal syntax diagnostic and skips to the next ',' or ';' so that
// every bad attribute on the line gets its own report.
func (p *parser) attr() (Attr, bool) {
	var a Attr
	if p.tok.Type != Ident {
		p.syntaxErrf("expected attribute name, found %q", p.tok)
		return a, p.recoverAttr()
	}
	a.Name = p.tok.String()
	a.NamePos = p.tok.Pos
	p.next()
	if p.tok.Type != Equals {
		p.syntaxErrf("expected '=' after attribute %q, found %q", a.Name, p.tok)
		return a, p.recoverAttr()
	}
	p.next()
	if p.tok.Type != Number {
		p.syntaxErrf("expected value for attribute %q, found %q", a.Name, p.tok)
		return a, p.recoverAttr()
	}
	a.Value = p.tok.String()
	a.ValuePos = p.tok.Pos
	p.next()
	return a, true
}

// recoverAttr skips to the next ',', ';' or EOF. It always reports
// failure: the malformed attribute is dropped.
func (p *parser) recoverAttr() bool {
	for p.tok.Type != Comma && p.tok.Type != Semicolon && p.tok.Type != EOF {
		p.next()
	}
	return false
}

// connStmt parses `src[.port] -> dst.port ;`.
func (p *parser) connStmt(f *File) bool {
	src, ok := p.signalRef()
	if !ok {
		return false
	}
	if !p.expect(Arrow, "'->'") {
		return false
	}
	dst, ok := p.signalRef()
	if !ok {
		return false
	}
	if dst.Port == "" {
		p.syntaxErrf("connection destination %q must name an input port", dst.Dev)
		return false
	}
	if !p.expect(Semicolon, "';'") {
		return false
	}
	f.Conns = append(f.Conns, ConnDecl{Src: src, Dst: dst})
	return true
}

// monitorStmt parses `device[.port] ;`.
func (p *parser) monitorStmt(f *File) bool {
	sig, ok := p.signalRef()
	if !ok {
		return false
	}
	if !p.expect(Semicolon, "';'") {
		return false
	}
	f.Monitors = append(f.Monitors, MonitorDecl{Sig: sig})
	return true
}

// signalRef parses `device[.port]`.
func (p *parser) signalRef() (SignalRef, bool) {
	var s SignalRef
	if p.tok.Type != Ident {
		p.syntaxErrf("expected device name, found %q", p.tok)
		return s, false
	}
	s.Dev = p.tok.String()
	s.Pos = p.tok.Pos
	p.next()
	if p.tok.Type != Dot {
		return s, true
	}
	p.next()
	if p.tok.Type != Ident {
		p.syntaxErrf("expected port name after '.', found %q", p.tok)
		return s, false
	}
	s.Port = p.tok.String()
	p.next()
	return s, true
}
