/*
GameScout
Copyright (c) 2026 The GameScout Contributors.
SPDX-License-Identifier: GPL-3.0-or-later

This file is part of GameScout.

GameScout is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GameScout is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GameScout.  If not, see <http://www.gnu.org/licenses/>.
*/

package keyvalues

import (
	"fmt"
	"io"
	"strings"
)

// ParseError describes the first unparsable token in a document.
type ParseError struct {
	Msg    string
	Line   int // 1-based line of the offending token
	Offset int // byte offset of the offending token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("keyvalues: line %d (offset %d): %s", e.Line, e.Offset, e.Msg)
}

// Parse reads all of r and parses it as a KeyValues document. The
// returned node is the document's root block.
func Parse(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("keyvalues: read input: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses a KeyValues document from a string. Parsing is
// fail-fast: any syntax error aborts the whole document with a
// *ParseError, there is no partial-tree recovery.
//
// Nested blocks are parsed with genuine recursion, so call depth equals
// the brace-nesting depth of the input. Steam's own files nest a
// handful of levels deep; Go's growable stacks handle thousands of
// levels before that strategy becomes a concern.
func ParseString(input string) (*Node, error) {
	p := &parser{input: input, line: 1}
	root := Block()
	if err := p.parseBlock(root, true); err != nil {
		return nil, err
	}
	return root, nil
}

type tokenKind int

const (
	tokString tokenKind = iota
	tokOpen
	tokClose
	tokEOF
)

type token struct {
	text   string
	kind   tokenKind
	line   int
	offset int
}

type parser struct {
	input string
	pos   int
	line  int
}

func (p *parser) errorf(line, offset int, format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: line, Offset: offset}
}

// skipSpace advances past whitespace and // line comments.
func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f':
			p.pos++
		case c == '/' && p.pos+1 < len(p.input) && p.input[p.pos+1] == '/':
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *parser) next() (token, error) {
	p.skipSpace()

	tok := token{line: p.line, offset: p.pos}
	if p.pos >= len(p.input) {
		tok.kind = tokEOF
		return tok, nil
	}

	switch c := p.input[p.pos]; c {
	case '{':
		p.pos++
		tok.kind = tokOpen
		return tok, nil
	case '}':
		p.pos++
		tok.kind = tokClose
		return tok, nil
	case '"':
		text, err := p.scanString()
		if err != nil {
			return tok, err
		}
		tok.kind = tokString
		tok.text = text
		return tok, nil
	default:
		return tok, p.errorf(tok.line, tok.offset, "unexpected character %q", c)
	}
}

// scanString consumes a double-quoted string starting at p.pos.
// Escaped quotes and backslashes are unescaped; any other escape
// sequence is kept literally.
func (p *parser) scanString() (string, error) {
	start, startLine := p.pos, p.line
	p.pos++ // opening quote

	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			return sb.String(), nil
		case '\\':
			if p.pos+1 < len(p.input) {
				esc := p.input[p.pos+1]
				if esc != '"' && esc != '\\' {
					sb.WriteByte(c)
				}
				if esc == '\n' {
					p.line++
				}
				sb.WriteByte(esc)
				p.pos += 2
				continue
			}
			sb.WriteByte(c)
			p.pos++
		case '\n':
			p.line++
			sb.WriteByte(c)
			p.pos++
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}

	return "", p.errorf(startLine, start, "unterminated string")
}

// parseBlock fills block with key/value pairs until the closing brace,
// or end of input when top is set.
func (p *parser) parseBlock(block *Node, top bool) error {
	for {
		tok, err := p.next()
		if err != nil {
			return err
		}

		switch tok.kind {
		case tokEOF:
			if !top {
				return p.errorf(tok.line, tok.offset, "unexpected end of input inside block")
			}
			return nil
		case tokClose:
			if top {
				return p.errorf(tok.line, tok.offset, "unmatched closing brace")
			}
			return nil
		case tokOpen:
			return p.errorf(tok.line, tok.offset, "expected key, got '{'")
		case tokString:
		}

		key := tok.text

		val, err := p.next()
		if err != nil {
			return err
		}
		switch val.kind {
		case tokString:
			block.Add(key, String(val.text))
		case tokOpen:
			child := Block()
			if err := p.parseBlock(child, false); err != nil {
				return err
			}
			block.Add(key, child)
		case tokClose:
			return p.errorf(val.line, val.offset, "expected value for key %q, got '}'", key)
		case tokEOF:
			return p.errorf(val.line, val.offset, "expected value for key %q, got end of input", key)
		}
	}
}
