// Package lex provides the core of a lexer built as a deterministic
// finite automaton whose states and associated actions are implemented
// as state functions.
//
// Clients provide state functions specialized in lexing their target
// language. Emitted items are buffered in a FIFO queue rather than a
// channel; once a StateFn has called Emit it should return promptly so
// the caller of Lex can receive the item.
//
package lex

import (
	"fmt"
	"io"
)

// EOF is both the rune returned by Next at end of input and the Type of
// the end-of-input item.
const EOF = -1

// A Type identifies the type of an Item. Values are defined by the
// client; negative values are reserved.
//
type Type int

// A Pos is a 1-based line/column source position.
//
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// An Item is a token emitted by a state function. Pos is the position
// of the token's first rune. Value is client-defined, usually the token
// text.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	switch v := i.Value.(type) {
	case string:
		return v
	case rune:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// A StateFn is both state and action of the lexing DFA. Upon entry the
// first rune relevant to the state has already been consumed and is
// available via Current. Returning nil transitions back to the initial
// state and marks the start of a new token.
//
type StateFn func(l *Lexer) StateFn

// A Lexer holds the state of the scanner.
//
type Lexer struct {
	in    []rune
	pos   []Pos // pos[i] is the position of rune i; pos[len(in)] is end of input
	idx   int   // index of the last consumed rune
	start Pos   // position of the current token's first rune
	queue []Item
	state StateFn
	init  StateFn
	err   error
}

// New returns a new lexer reading from r with the given initial state.
// The input is consumed eagerly; a read error truncates the input and
// is reported by Err.
//
func New(r io.Reader, init StateFn) *Lexer {
	b, err := io.ReadAll(r)
	in := []rune(string(b))
	pos := make([]Pos, len(in)+1)
	line, col := 1, 1
	for i, r := range in {
		pos[i] = Pos{Line: line, Col: col}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	pos[len(in)] = Pos{Line: line, Col: col}
	return &Lexer{in: in, pos: pos, idx: -1, init: init, err: err}
}

// Err returns the input read error, if any.
//
func (l *Lexer) Err() error { return l.err }

// Lex runs the DFA until an item is available and returns it.
//
func (l *Lexer) Lex() Item {
	for len(l.queue) == 0 {
		if l.state == nil {
			l.start = l.pos[l.next()]
			l.state = l.init
			continue
		}
		l.state = l.state(l)
	}
	it := l.queue[0]
	l.queue = l.queue[1:]
	return it
}

// next consumes the next rune and returns the index it will occupy.
func (l *Lexer) next() int {
	if l.idx < len(l.in) {
		l.idx++
	}
	if l.idx >= len(l.in) {
		return len(l.in)
	}
	return l.idx
}

// Next consumes and returns the next rune, or EOF at end of input.
//
func (l *Lexer) Next() rune {
	if i := l.next(); i < len(l.in) {
		return l.in[i]
	}
	return EOF
}

// Current returns the last consumed rune.
//
func (l *Lexer) Current() rune {
	if l.idx < 0 || l.idx >= len(l.in) {
		return EOF
	}
	return l.in[l.idx]
}

// Backup un-consumes the last rune. Only one rune of backup is
// supported between two calls to Next.
//
func (l *Lexer) Backup() {
	if l.idx >= 0 {
		l.idx--
	}
}

// AcceptWhile consumes runes while f returns true. The first rune
// rejected by f is left un-consumed.
//
func (l *Lexer) AcceptWhile(f func(r rune) bool) {
	for {
		r := l.Next()
		if r == EOF {
			return
		}
		if !f(r) {
			l.Backup()
			return
		}
	}
}

// Pos returns the position of the last consumed rune.
//
func (l *Lexer) Pos() Pos {
	if l.idx < 0 {
		return l.pos[0]
	}
	if l.idx >= len(l.in) {
		return l.pos[len(l.in)]
	}
	return l.pos[l.idx]
}

// TokenPos returns the position of the current token's first rune, as
// recorded when the DFA last entered its initial state.
//
func (l *Lexer) TokenPos() Pos { return l.start }

// Emit queues an item of the given type carrying value v. Its position
// is the start of the current token.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	l.queue = append(l.queue, Item{Type: t, Pos: l.start, Value: v})
}
