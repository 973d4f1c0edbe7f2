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

// Package vdfbinary parses Valve's binary VDF format, the framing Steam
// uses for user shortcut records (shortcuts.vdf). It is distinct from
// the text KeyValues grammar handled by pkg/keyvalues.
package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrEmptyVDF is returned for zero-length input.
	ErrEmptyVDF = errors.New("binary vdf input is empty")
	// ErrNotBinaryVDF is returned when the input does not start with a
	// binary VDF marker, usually because it is a text VDF file.
	ErrNotBinaryVDF = errors.New("input is not binary vdf, it may be a text vdf file")
	// ErrTruncatedVDF is returned when the input ends mid-record.
	ErrTruncatedVDF = errors.New("binary vdf input ends mid-record, the file may be corrupted")
)

const (
	markerBlock      byte = 0x00
	markerString     byte = 0x01
	markerUint32     byte = 0x02
	markerEndOfBlock byte = 0x08

	stringTerminator byte = 0x00
)

// Value is one field in a parsed binary VDF tree: a string, a uint32 or
// a nested Block.
type Value struct {
	raw any
}

// Block is an ordered-by-key-insertion map of field name to value. Keys
// are lowercased at parse time because Steam treats them
// case-insensitively.
type Block map[string]Value

// AsString returns the value as a string.
func (v Value) AsString() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// AsUint returns the value as a uint32.
func (v Value) AsUint() (uint32, bool) {
	u, ok := v.raw.(uint32)
	return u, ok
}

// AsBlock returns the value as a nested block.
func (v Value) AsBlock() (Block, bool) {
	b, ok := v.raw.(Block)
	return b, ok
}

// GetString returns the string field named key (case-insensitive).
func (b Block) GetString(key string) (string, bool) {
	v, ok := b[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetUint returns the uint32 field named key (case-insensitive).
func (b Block) GetUint(key string) (uint32, bool) {
	v, ok := b[strings.ToLower(key)]
	if !ok {
		return 0, false
	}
	return v.AsUint()
}

// GetBool returns the uint32 field named key interpreted as a boolean.
func (b Block) GetBool(key string) (bool, bool) {
	u, ok := b.GetUint(key)
	return u != 0, ok
}

// GetBlock returns the nested block field named key (case-insensitive).
func (b Block) GetBlock(key string) (Block, bool) {
	v, ok := b[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	return v.AsBlock()
}

// Parse reads a whole binary VDF document and returns the root block.
func Parse(r io.Reader) (Block, error) {
	buf := bufio.NewReader(r)

	first, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyVDF
	}
	if err != nil {
		return nil, fmt.Errorf("vdfbinary: peek: %w", err)
	}

	switch first[0] {
	case markerBlock, markerString, markerUint32, markerEndOfBlock:
	default:
		return nil, ErrNotBinaryVDF
	}

	block, err := parseBlock(buf)
	if errors.Is(err, io.EOF) {
		return nil, ErrTruncatedVDF
	}
	return block, err
}

func parseBlock(buf *bufio.Reader) (Block, error) {
	block := make(Block)

	for {
		marker, err := buf.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("vdfbinary: read marker: %w", err)
		}
		if marker == markerEndOfBlock {
			return block, nil
		}

		key, err := readString(buf)
		if err != nil {
			return nil, err
		}

		var value Value
		switch marker {
		case markerBlock:
			nested, err := parseBlock(buf)
			if err != nil {
				return nil, err
			}
			value = Value{nested}
		case markerString:
			s, err := readString(buf)
			if err != nil {
				return nil, err
			}
			value = Value{s}
		case markerUint32:
			u, err := readUint32(buf)
			if err != nil {
				return nil, err
			}
			value = Value{u}
		default:
			return nil, fmt.Errorf("vdfbinary: unexpected marker 0x%02x, the file may be corrupted", marker)
		}

		block[strings.ToLower(key)] = value
	}
}

func readString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(stringTerminator)
	if err != nil {
		return "", fmt.Errorf("vdfbinary: read string: %w", err)
	}
	return s[:len(s)-1], nil
}

func readUint32(buf *bufio.Reader) (uint32, error) {
	raw := make([]byte, 4)
	if _, err := io.ReadFull(buf, raw); err != nil {
		return 0, fmt.Errorf("vdfbinary: read uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(raw), nil
}
