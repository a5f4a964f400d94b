// Copyright 2026 The logsim Authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the front end of the circuit description
// language: a lexer, a parser for the fixed three-block grammar
// (devices, connections, monitors) and a semantic analyzer producing a
// validated *logsim.Netlist or an ordered list of diagnostics.
//
package hdl

import (
	"io"
	"strings"
	"unicode"

	"logsim/internal/lex"
)

// Tokens. Device-kind and attribute names lex as plain identifiers so
// that their misuse is reported semantically, not syntactically; only
// the five block-structure words are keywords.
const (
	EOF     lex.Type = lex.EOF
	Illegal lex.Type = iota
	Ident
	Number // integer or bit-sequence literal, raw text preserved
	Keyword
	Colon
	Semicolon
	Comma
	Dot
	Equals
	Arrow
)

var keywords = map[string]bool{
	"begin":       true,
	"end":         true,
	"devices":     true,
	"connections": true,
	"monitors":    true,
}

// Lexer returns a new lexer for circuit description source text.
//
func Lexer(r io.Reader) *lex.Lexer {
	return lex.New(r, lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Current()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case r == '#':
		return lexComment
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case '0' <= r && r <= '9':
		return lexNumber
	case r == ':':
		l.Emit(Colon, ":")
	case r == ';':
		l.Emit(Semicolon, ";")
	case r == ',':
		l.Emit(Comma, ",")
	case r == '.':
		l.Emit(Dot, ".")
	case r == '=':
		l.Emit(Equals, "=")
	case r == '-':
		if l.Next() == '>' {
			l.Emit(Arrow, "->")
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Illegal, r)
	}
	return nil
}

// lexComment skips a #...# comment. The opening # has been consumed.
func lexComment(l *lex.Lexer) lex.StateFn {
	for {
		switch l.Next() {
		case '#':
			return nil
		case lex.EOF:
			l.Emit(Illegal, "unterminated comment")
			return lexEOF
		}
	}
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	var buf strings.Builder
	buf.WriteRune(l.Current())
	r := l.Next()
	for unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	s := buf.String()
	if keywords[s] {
		l.Emit(Keyword, s)
	} else {
		l.Emit(Ident, s)
	}
	return nil
}

// lexNumber emits the raw digit text: leading zeros are significant in
// waveform literals.
func lexNumber(l *lex.Lexer) lex.StateFn {
	var buf strings.Builder
	buf.WriteRune(l.Current())
	r := l.Next()
	for '0' <= r && r <= '9' {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(Number, buf.String())
	return nil
}

// lexEOF places the lexer in end-of-file state. Once in this state, the
// lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(EOF, "end of input")
	return lexEOF
}
