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

package launchers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/pkg/games"
)

// testRoots returns a Roots pointing every base directory into a fresh
// temp tree, mimicking an XDG home.
func testRoots(t *testing.T) Roots {
	t.Helper()
	home := t.TempDir()
	return Roots{
		Home:   home,
		Config: filepath.Join(home, ".config"),
		Data:   filepath.Join(home, ".local", "share"),
		Cache:  filepath.Join(home, ".cache"),
	}
}

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// writeBinFile writes raw bytes to path, creating parent directories.
func writeBinFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

// mkdir creates a directory and its parents.
func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0o755))
}

// gameByTitle finds a game in a result slice by its title.
func gameByTitle(t *testing.T, list []games.Game, title string) games.Game {
	t.Helper()
	for _, g := range list {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("no game titled %q in %d results", title, len(list))
	return games.Game{}
}
