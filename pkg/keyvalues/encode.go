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

// Encode serializes a tree back to the KeyValues text grammar. The
// root must be a block. Re-parsing the output yields an Equal tree.
func Encode(w io.Writer, root *Node) error {
	if !root.IsBlock() {
		return fmt.Errorf("keyvalues: encode root must be a block")
	}
	return encodeEntries(w, root, 0)
}

// EncodeString is Encode into a string.
func EncodeString(root *Node) (string, error) {
	var sb strings.Builder
	if err := Encode(&sb, root); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func encodeEntries(w io.Writer, block *Node, depth int) error {
	indent := strings.Repeat("\t", depth)
	for _, e := range block.Entries() {
		if e.Node.IsBlock() {
			if _, err := fmt.Fprintf(w, "%s%s\n%s{\n", indent, quote(e.Key), indent); err != nil {
				return fmt.Errorf("keyvalues: encode: %w", err)
			}
			if err := encodeEntries(w, e.Node, depth+1); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s}\n", indent); err != nil {
				return fmt.Errorf("keyvalues: encode: %w", err)
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s\t\t%s\n", indent, quote(e.Key), quote(e.Node.Value())); err != nil {
			return fmt.Errorf("keyvalues: encode: %w", err)
		}
	}
	return nil
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
