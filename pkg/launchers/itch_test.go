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
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/pkg/games"
)

type itchCaveRow struct {
	gameID  int64
	title   string
	verdict string
}

func itchFixture(t *testing.T, dbPath string, rows ...itchCaveRow) {
	t.Helper()
	mkdir(t, filepath.Dir(dbPath))

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, db.Close()) }()

	_, err = db.Exec(`CREATE TABLE games (id INTEGER PRIMARY KEY, title TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE caves (id TEXT PRIMARY KEY, game_id INTEGER, verdict TEXT)`)
	require.NoError(t, err)

	for i, row := range rows {
		_, err = db.Exec(`INSERT INTO games (id, title) VALUES (?, ?)`, row.gameID, row.title)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO caves (id, game_id, verdict) VALUES (?, ?, ?)`,
			i, row.gameID, row.verdict)
		require.NoError(t, err)
	}
}

func TestItchDetected(t *testing.T) {
	t.Parallel()

	t.Run("native_install", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, filepath.Join(roots.Config, "itch", "db", "butler.db"))
		assert.True(t, NewItch(roots).Detected())
	})

	t.Run("flatpak_fallback", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, flatpakAppPath(roots.Home, itchFlatpakID,
			"config", "itch", "db", "butler.db"))
		assert.True(t, NewItch(roots).Detected())
	})

	t.Run("not_installed", func(t *testing.T) {
		t.Parallel()
		assert.False(t, NewItch(testRoots(t)).Detected())
	})
}

func TestItchGames(t *testing.T) {
	t.Parallel()

	t.Run("installed_games", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, filepath.Join(roots.Config, "itch", "db", "butler.db"),
			itchCaveRow{
				gameID: 2873, title: "Celeste Classic",
				verdict: `{
					"basePath": "/games/itch/celeste",
					"candidates": [{"path": "celeste.bin"}]
				}`,
			},
		)

		list, err := NewItch(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)

		game := list[0]
		assert.Equal(t, "Celeste Classic", game.Title)
		assert.Equal(t, "2873", game.ID)
		assert.Equal(t, "/games/itch/celeste", game.InstallDir)
		assert.Equal(t, games.Itch, game.Source)
		assert.Equal(t, []string{"/games/itch/celeste/celeste.bin"}, game.LaunchCommand.Argv())
	})

	t.Run("interpreter_candidate", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, filepath.Join(roots.Config, "itch", "db", "butler.db"),
			itchCaveRow{
				gameID: 77, title: "Love Jam Entry",
				verdict: `{
					"basePath": "/games/itch/lovejam",
					"candidates": [{"path": "game.love", "scriptInfo": {"interpreter": "love"}}]
				}`,
			},
		)

		list, err := NewItch(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t,
			[]string{"love", "/games/itch/lovejam/game.love"},
			list[0].LaunchCommand.Argv())
	})

	t.Run("cave_without_candidates_skipped", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, filepath.Join(roots.Config, "itch", "db", "butler.db"),
			itchCaveRow{
				gameID: 1, title: "Broken",
				verdict: `{"basePath": "/games/itch/broken", "candidates": []}`,
			},
			itchCaveRow{
				gameID: 2, title: "Working",
				verdict: `{"basePath": "/games/itch/working", "candidates": [{"path": "run"}]}`,
			},
		)

		list, err := NewItch(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Working", list[0].Title)
	})

	t.Run("corrupt_verdict_skipped", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		itchFixture(t, filepath.Join(roots.Config, "itch", "db", "butler.db"),
			itchCaveRow{gameID: 1, title: "Corrupt", verdict: `{not json`},
			itchCaveRow{
				gameID: 2, title: "Working",
				verdict: `{"basePath": "/games/itch/working", "candidates": [{"path": "run"}]}`,
			},
		)

		list, err := NewItch(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Working", list[0].Title)
	})
}
