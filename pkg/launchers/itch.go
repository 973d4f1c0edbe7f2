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
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/rs/zerolog/log"
)

const itchFlatpakID = "io.itch.itch"

// Itch probes games installed through the itch.io app. Installed games
// live in butler's sqlite database; the executable for each install is
// recorded as a JSON "verdict" produced by butler's configure step.
type Itch struct {
	dbPath string
}

func NewItch(roots Roots) *Itch {
	path := filepath.Join(roots.Config, "itch", "db", "butler.db")
	if !fileExists(path) {
		path = flatpakAppPath(roots.Home, itchFlatpakID, "config", "itch", "db", "butler.db")
	}
	log.Debug().Str("path", path).Bool("exists", fileExists(path)).Msg("itch: butler database")
	return &Itch{dbPath: path}
}

func (*Itch) Variant() games.Variant { return games.Itch }

func (i *Itch) Detected() bool { return fileExists(i.dbPath) }

// itchVerdict is the part of butler's configure output we need: the
// install base path and the launch candidates it found there.
type itchVerdict struct {
	BasePath   string `json:"basePath"`
	Candidates []struct {
		Path   string `json:"path"`
		Script struct {
			Interpreter string `json:"interpreter"`
		} `json:"scriptInfo"`
	} `json:"candidates"`
}

func (i *Itch) Games() ([]games.Game, error) {
	db, err := sql.Open("sqlite3", "file:"+i.dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open itch database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("itch: error closing database")
		}
	}()

	rows, err := db.Query(`
		SELECT games.id, games.title, caves.verdict
		FROM caves
		INNER JOIN games ON games.id = caves.game_id`)
	if err != nil {
		return nil, fmt.Errorf("query itch caves: %w", err)
	}
	defer rows.Close()

	var result []games.Game
	for rows.Next() {
		var (
			id             int64
			title, verdict sql.NullString
		)
		if err := rows.Scan(&id, &title, &verdict); err != nil {
			return nil, fmt.Errorf("scan itch cave row: %w", err)
		}
		if !title.Valid || title.String == "" || !verdict.Valid {
			log.Warn().Int64("id", id).Msg("itch: cave row missing title or verdict")
			continue
		}

		launch, installDir, ok := itchLaunchCommand(verdict.String)
		if !ok {
			log.Warn().Int64("id", id).Str("title", title.String).
				Msg("itch: no launch candidate in verdict")
			continue
		}

		result = append(result, games.Game{
			Title:         cleanTitle(title.String),
			ID:            strconv.FormatInt(id, 10),
			InstallDir:    installDir,
			LaunchCommand: launch,
			Source:        games.Itch,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate itch caves: %w", err)
	}
	return result, nil
}

// itchLaunchCommand builds the launch command from a cave's verdict.
// itch games launch as plain binaries, so the command runs the first
// candidate directly, through its interpreter when butler recorded one.
func itchLaunchCommand(raw string) (games.LaunchCommand, string, bool) {
	var verdict itchVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		log.Warn().Err(err).Msg("itch: cannot parse cave verdict")
		return games.LaunchCommand{}, "", false
	}
	if verdict.BasePath == "" || len(verdict.Candidates) == 0 {
		return games.LaunchCommand{}, "", false
	}

	candidate := verdict.Candidates[0]
	binary := filepath.Join(verdict.BasePath, candidate.Path)
	if interpreter := candidate.Script.Interpreter; interpreter != "" {
		return command(interpreter, []string{binary}), verdict.BasePath, true
	}
	return command(binary, nil), verdict.BasePath, true
}
