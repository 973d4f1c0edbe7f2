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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gamescout/gamescout/internal/vdfbinary"
	"github.com/gamescout/gamescout/pkg/games"
	"github.com/gamescout/gamescout/pkg/keyvalues"
	"github.com/rs/zerolog/log"
)

// SteamShortcuts probes non-Steam games the user registered with Steam.
// Each Steam user keeps a binary shortcuts.vdf; the 64-bit ID Steam
// launches shortcuts by is recovered from the user's screenshots.vdf
// when possible, otherwise derived from the 32-bit shortcut ID.
type SteamShortcuts struct {
	userdataDir string
	flatpak     bool
}

// NewSteamShortcuts resolves the Steam userdata directory, preferring
// the native install and falling back to the Flatpak one.
func NewSteamShortcuts(roots Roots) *SteamShortcuts {
	dir := filepath.Join(roots.Data, "Steam", "userdata")
	flatpak := false
	if !dirExists(dir) {
		dir = flatpakAppPath(roots.Home, steamFlatpakID, "data", "Steam", "userdata")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("exists", dirExists(dir)).Msg("steam shortcuts: userdata directory")
	return &SteamShortcuts{userdataDir: dir, flatpak: flatpak}
}

func (*SteamShortcuts) Variant() games.Variant { return games.SteamShortcuts }

func (s *SteamShortcuts) Detected() bool { return dirExists(s.userdataDir) }

// Games merges shortcuts across every Steam user on the machine. A
// user with a corrupt or missing shortcuts file is skipped, not fatal.
func (s *SteamShortcuts) Games() ([]games.Game, error) {
	userDirs, err := os.ReadDir(s.userdataDir)
	if err != nil {
		return nil, fmt.Errorf("read steam userdata dir: %w", err)
	}

	var all []games.Game
	for _, userDir := range userDirs {
		if !userDir.IsDir() {
			continue
		}
		all = append(all, s.userGames(filepath.Join(s.userdataDir, userDir.Name()))...)
	}

	if len(all) == 0 {
		log.Warn().Msg("steam shortcuts: no shortcuts found")
	}
	return all, nil
}

func (s *SteamShortcuts) userGames(userDir string) []games.Game {
	shortcutsPath := filepath.Join(userDir, "config", "shortcuts.vdf")
	if !fileExists(shortcutsPath) {
		log.Debug().Str("path", shortcutsPath).Msg("steam shortcuts: no shortcuts.vdf for user")
		return nil
	}

	data, err := os.ReadFile(shortcutsPath) //nolint:gosec // reads Steam's own config
	if err != nil {
		log.Warn().Err(err).Str("path", shortcutsPath).Msg("steam shortcuts: cannot read shortcuts.vdf")
		return nil
	}

	shortcuts, err := vdfbinary.ParseShortcuts(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("path", shortcutsPath).Msg("steam shortcuts: cannot parse shortcuts.vdf")
		return nil
	}

	launchIDs := s.shortcutLaunchIDs(filepath.Join(userDir, "760", "screenshots.vdf"))
	gridDir := filepath.Join(userDir, "config", "grid")

	result := make([]games.Game, 0, len(shortcuts))
	for _, shortcut := range shortcuts {
		if shortcut.AppName == "" || shortcut.IsHidden {
			continue
		}

		launchID, ok := launchIDs[shortcut.AppName]
		if !ok {
			// Big Picture ID: the 64-bit form Steam uses to launch
			// 32-bit shortcut IDs.
			launchID = strconv.FormatUint(uint64(shortcut.AppID)<<32|0x02000000, 10)
		}

		// Grid images written by Steam itself carry a trailing "p";
		// Flathub Steam's do not.
		gridID := strconv.FormatUint(uint64(shortcut.AppID), 10)
		boxArt := existingImagePath(gridDir, gridID+"p")
		if boxArt == "" {
			boxArt = existingImagePath(gridDir, gridID)
		}

		installDir := shortcut.StartDir
		if !dirExists(installDir) {
			installDir = ""
		}

		result = append(result, games.Game{
			Title:         cleanTitle(shortcut.AppName),
			ID:            launchID,
			InstallDir:    installDir,
			BoxArtPath:    boxArt,
			IconPath:      shortcut.Icon,
			LaunchCommand: steamLaunchCommand(launchID, s.flatpak),
			Source:        games.SteamShortcuts,
		})
	}
	return result
}

// shortcutLaunchIDs maps shortcut titles to the 64-bit IDs recorded in
// screenshots.vdf. The file appends and never resets, so for repeated
// titles the newest entry wins. Errors are reported through an empty
// map: launch IDs are then derived instead.
func (s *SteamShortcuts) shortcutLaunchIDs(screenshotsPath string) map[string]string {
	ids := make(map[string]string)

	f, err := os.Open(screenshotsPath) //nolint:gosec // reads Steam's own config
	if err != nil {
		log.Debug().Err(err).Str("path", screenshotsPath).Msg("steam shortcuts: no screenshots.vdf")
		return ids
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("steam shortcuts: error closing screenshots.vdf")
		}
	}()

	root, err := keyvalues.Parse(f)
	if err != nil {
		log.Warn().Err(err).Str("path", screenshotsPath).Msg("steam shortcuts: cannot parse screenshots.vdf")
		return ids
	}

	names, ok := findBlockFold(root, "shortcutnames")
	if !ok {
		log.Debug().Str("path", screenshotsPath).Msg("steam shortcuts: no shortcutnames block")
		return ids
	}

	for _, e := range names.Entries() {
		if e.Node.IsBlock() || e.Node.Value() == "" {
			continue
		}
		ids[e.Node.Value()] = e.Key
	}
	return ids
}

// findBlockFold searches the tree depth-first for a block entry whose
// key matches case-insensitively.
func findBlockFold(n *keyvalues.Node, key string) (*keyvalues.Node, bool) {
	if b, ok := blockFold(n, key); ok {
		return b, true
	}
	for _, e := range n.Entries() {
		if !e.Node.IsBlock() {
			continue
		}
		if b, ok := findBlockFold(e.Node, key); ok {
			return b, true
		}
	}
	return nil, false
}
