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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	t.Parallel()

	t.Run("nested_block", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`"app" { "id" "7" "name" "Foo" }`)
		require.NoError(t, err)

		app, ok := root.GetBlock("app")
		require.True(t, ok)

		id, ok := app.GetString("id")
		require.True(t, ok)
		assert.Equal(t, "7", id)

		name, ok := app.GetString("name")
		require.True(t, ok)
		assert.Equal(t, "Foo", name)
	})

	t.Run("empty_input_is_empty_block", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString("")
		require.NoError(t, err)
		assert.True(t, root.IsBlock())
		assert.Equal(t, 0, root.Len())
	})

	t.Run("whitespace_between_tokens_is_insignificant", func(t *testing.T) {
		t.Parallel()

		compact, err := ParseString(`"a"{"b""c"}`)
		require.NoError(t, err)
		spread, err := ParseString("\"a\"\n{\n\t\"b\"\t\t\"c\"\r\n}\n")
		require.NoError(t, err)
		assert.True(t, compact.Equal(spread))
	})

	t.Run("line_comments_are_skipped", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`// header comment
"key"		"value" // trailing comment
// "ghost"	"entry"
`)
		require.NoError(t, err)
		assert.Equal(t, 1, root.Len())

		v, ok := root.GetString("key")
		require.True(t, ok)
		assert.Equal(t, "value", v)
	})

	t.Run("escaped_quote_and_backslash", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`"path"		"C:\\Games\\\"quoted\""`)
		require.NoError(t, err)

		v, ok := root.GetString("path")
		require.True(t, ok)
		assert.Equal(t, `C:\Games\"quoted"`, v)
	})

	t.Run("unknown_escape_passes_through", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`"key"		"a\nb"`)
		require.NoError(t, err)

		v, ok := root.GetString("key")
		require.True(t, ok)
		assert.Equal(t, `a\nb`, v)
	})

	t.Run("duplicate_keys_last_wins", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`"k" "first" "k" "second"`)
		require.NoError(t, err)

		v, ok := root.GetString("k")
		require.True(t, ok)
		assert.Equal(t, "second", v)

		all := root.All("k")
		require.Len(t, all, 2)
		assert.Equal(t, "first", all[0].Value())
		assert.Equal(t, "second", all[1].Value())
	})

	t.Run("entries_preserve_document_order", func(t *testing.T) {
		t.Parallel()

		root, err := ParseString(`"b" "1" "a" "2" "b" "3"`)
		require.NoError(t, err)

		entries := root.Entries()
		require.Len(t, entries, 3)
		assert.Equal(t, "b", entries[0].Key)
		assert.Equal(t, "a", entries[1].Key)
		assert.Equal(t, "b", entries[2].Key)
	})
}

func TestParseStringErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing_closing_brace", func(t *testing.T) {
		t.Parallel()

		input := `"app" { "id" "7"`
		_, err := ParseString(input)
		require.Error(t, err)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, "end of input")
		assert.Equal(t, len(input), parseErr.Offset)
	})

	t.Run("unmatched_closing_brace", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(`"a" "b" }`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, "unmatched closing brace")
		assert.Equal(t, 8, parseErr.Offset)
	})

	t.Run("unterminated_string", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString("\n\"key\"  \"val")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, "unterminated string")
		assert.Equal(t, 2, parseErr.Line)
		assert.Equal(t, 8, parseErr.Offset)
	})

	t.Run("unquoted_token", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(`key "value"`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 1, parseErr.Line)
		assert.Equal(t, 0, parseErr.Offset)
	})

	t.Run("key_without_value", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(`"lonely"`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, `value for key "lonely"`)
	})

	t.Run("block_in_key_position", func(t *testing.T) {
		t.Parallel()

		_, err := ParseString(`{ "a" "b" }`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("whole_document_fails_on_one_bad_entry", func(t *testing.T) {
		t.Parallel()

		// Fail-fast contract: no partial tree comes back.
		root, err := ParseString(`"good" "1" bad "2"`)
		require.Error(t, err)
		assert.Nil(t, root)
	})
}

func TestParseTermination(t *testing.T) {
	t.Parallel()

	t.Run("deeply_nested_input", func(t *testing.T) {
		t.Parallel()

		const depth = 10000
		var sb strings.Builder
		for i := 0; i < depth; i++ {
			sb.WriteString(`"k" {`)
		}
		sb.WriteString(strings.Repeat("}", depth))

		root, err := ParseString(sb.String())
		require.NoError(t, err)

		n := root
		levels := 0
		for {
			child, ok := n.GetBlock("k")
			if !ok {
				break
			}
			levels++
			n = child
		}
		assert.Equal(t, depth, levels)
	})

	t.Run("deeply_nested_truncated_input", func(t *testing.T) {
		t.Parallel()

		input := strings.Repeat(`"k" {`, 5000)
		_, err := ParseString(input)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Msg, "end of input")
	})

	t.Run("unbalanced_braces", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{
			`"a" { "b" { "c" "d" }`,
			`"a" { } }`,
			`}{`,
			`"a" {{`,
		} {
			_, err := ParseString(input)
			assert.Error(t, err, "input: %s", input)
		}
	})
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	root, err := Parse(strings.NewReader(`"key" "value"`))
	require.NoError(t, err)

	v, ok := root.GetString("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestParseErrorIsNotSentinel(t *testing.T) {
	t.Parallel()

	_, err := ParseString(`{`)
	require.Error(t, err)
	assert.False(t, errors.Is(err, errors.New("other")))
	assert.Contains(t, err.Error(), "line 1")
}
