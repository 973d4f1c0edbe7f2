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
	"fmt"
	"path/filepath"
	"strconv"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/rs/zerolog/log"
)

const lutrisFlatpakID = "net.lutris.Lutris"

// Lutris probes games managed by Lutris, read from its pga.db sqlite
// database. Lutris may live in the data, config or cache directory
// depending on version, or under Flatpak.
type Lutris struct {
	dataDir string
	flatpak bool
}

func NewLutris(roots Roots) *Lutris {
	flatpak := false
	dir := ""
	for _, candidate := range []string{
		filepath.Join(roots.Data, "lutris"),
		filepath.Join(roots.Config, "lutris"),
		filepath.Join(roots.Cache, "lutris"),
	} {
		if fileExists(filepath.Join(candidate, "pga.db")) {
			dir = candidate
			break
		}
	}
	if dir == "" {
		dir = flatpakAppPath(roots.Home, lutrisFlatpakID, "data", "lutris")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("flatpak", flatpak).Msg("lutris: data directory")
	return &Lutris{dataDir: dir, flatpak: flatpak}
}

func (*Lutris) Variant() games.Variant { return games.Lutris }

func (l *Lutris) Detected() bool {
	return fileExists(filepath.Join(l.dataDir, "pga.db")) &&
		dirExists(filepath.Join(l.dataDir, "coverart"))
}

func (l *Lutris) Games() ([]games.Game, error) {
	dbPath := filepath.Join(l.dataDir, "pga.db")

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open lutris database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("lutris: error closing database")
		}
	}()

	rows, err := db.Query(`SELECT id, name, slug, installer_slug, directory FROM games`)
	if err != nil {
		return nil, fmt.Errorf("query lutris games: %w", err)
	}
	defer rows.Close()

	var result []games.Game
	for rows.Next() {
		var (
			id                             int64
			name, slug, installer, gameDir sql.NullString
		)
		if err := rows.Scan(&id, &name, &slug, &installer, &gameDir); err != nil {
			return nil, fmt.Errorf("scan lutris game row: %w", err)
		}
		if !name.Valid || name.String == "" || !slug.Valid {
			log.Warn().Int64("id", id).Msg("lutris: game row missing name or slug")
			continue
		}
		// Rows without an installer slug are store imports Lutris
		// knows about but has not installed.
		if !installer.Valid || installer.String == "" {
			continue
		}

		runID := strconv.FormatInt(id, 10)
		result = append(result, games.Game{
			Title:         cleanTitle(name.String),
			ID:            runID,
			InstallDir:    gameDir.String,
			BoxArtPath:    existingImagePath(filepath.Join(l.dataDir, "coverart"), slug.String),
			IconPath:      l.iconPath(slug.String),
			LaunchCommand: l.launchCommand(runID),
			Source:        games.Lutris,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lutris games: %w", err)
	}
	return result, nil
}

func (l *Lutris) iconPath(slug string) string {
	return existingImagePath(
		filepath.Join(l.dataDir, "icons", "hicolor", "128x128", "apps"),
		"lutris_"+slug,
	)
}

func (l *Lutris) launchCommand(runID string) games.LaunchCommand {
	// LUTRIS_SKIP_INIT skips the runtime update check so the game
	// starts immediately.
	if l.flatpak {
		return flatpakCommand(lutrisFlatpakID,
			[]string{"--env=LUTRIS_SKIP_INIT=1"},
			[]string{"lutris:rungameid/" + runID})
	}
	return command("lutris", []string{"lutris:rungameid/" + runID}, "LUTRIS_SKIP_INIT=1")
}
