package lex_test

import (
	"strings"
	"testing"
	"unicode"

	"logsim/internal/lex"
)

const (
	tEOF  lex.Type = lex.EOF
	tWord lex.Type = iota
	tPunct
)

func tInit(l *lex.Lexer) lex.StateFn {
	r := l.Current()
	switch {
	case r == lex.EOF:
		return tEOFState
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r):
		return tWordState
	default:
		l.Emit(tPunct, r)
	}
	return nil
}

func tWordState(l *lex.Lexer) lex.StateFn {
	var b strings.Builder
	b.WriteRune(l.Current())
	r := l.Next()
	for unicode.IsLetter(r) {
		b.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(tWord, b.String())
	return nil
}

func tEOFState(l *lex.Lexer) lex.StateFn {
	l.Emit(tEOF, "eof")
	return tEOFState
}

func TestLex(t *testing.T) {
	l := lex.New(strings.NewReader("ab cd;\nef"), tInit)
	td := []struct {
		typ  lex.Type
		val  string
		line int
		col  int
	}{
		{tWord, "ab", 1, 1},
		{tWord, "cd", 1, 4},
		{tPunct, ";", 1, 6},
		{tWord, "ef", 2, 1},
		{tEOF, "eof", 2, 3},
	}
	for _, d := range td {
		i := l.Lex()
		if i.Type != d.typ {
			t.Fatalf("token %q: got type %d, want %d", d.val, i.Type, d.typ)
		}
		if i.String() != d.val {
			t.Errorf("got token %q, want %q", i.String(), d.val)
		}
		if i.Pos.Line != d.line || i.Pos.Col != d.col {
			t.Errorf("token %q: got pos %s, want %d:%d", d.val, i.Pos, d.line, d.col)
		}
	}
}

func TestLex_eofIsSticky(t *testing.T) {
	l := lex.New(strings.NewReader("x"), tInit)
	if i := l.Lex(); i.Type != tWord {
		t.Fatalf("got %d, want word", i.Type)
	}
	for n := 0; n < 3; n++ {
		if i := l.Lex(); i.Type != tEOF {
			t.Fatalf("got %d, want EOF", i.Type)
		}
	}
}

func TestLex_empty(t *testing.T) {
	l := lex.New(strings.NewReader(""), tInit)
	i := l.Lex()
	if i.Type != tEOF {
		t.Fatalf("got %d, want EOF", i.Type)
	}
	if i.Pos.Line != 1 || i.Pos.Col != 1 {
		t.Errorf("got pos %s, want 1:1", i.Pos)
	}
}
