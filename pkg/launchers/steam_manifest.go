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
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gamescout/gamescout/pkg/keyvalues"
	"github.com/rs/zerolog/log"
)

// This file is the read-only projection layer between parsed KeyValues
// trees and the typed records the Steam probe works with. Steam treats
// keys case-insensitively, so all lookups here fold case instead of
// relying on exact spelling.

// appManifest is the typed record extracted from one appmanifest_<id>.acf.
type appManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

var (
	errNoAppState   = errors.New("manifest has no AppState block")
	errNoAppID      = errors.New("manifest has no appid")
	errNoInstallDir = errors.New("manifest has no installdir")
)

// extractAppManifest projects a parsed manifest tree into an
// appManifest. The app ID and install directory are required; a
// missing display name falls back to the install directory's base
// name.
func extractAppManifest(root *keyvalues.Node) (appManifest, error) {
	state, ok := blockFold(root, "AppState")
	if !ok {
		return appManifest{}, errNoAppState
	}

	appID, ok := stringFold(state, "appid")
	if !ok || appID == "" {
		return appManifest{}, errNoAppID
	}

	installDir, ok := stringFold(state, "installdir")
	if !ok || installDir == "" {
		return appManifest{}, fmt.Errorf("app %s: %w", appID, errNoInstallDir)
	}

	name, ok := stringFold(state, "name")
	if !ok || name == "" {
		name = filepath.Base(installDir)
	}

	return appManifest{
		AppID:      appID,
		Name:       cleanTitle(name),
		InstallDir: installDir,
	}, nil
}

// extractLibraryFolders returns the library root paths recorded in a
// parsed libraryfolders.vdf tree. Both layouts are handled: the modern
// one where each numbered entry is a block with a "path" field, and
// the legacy one where the numbered entry is the path string itself.
// Entries without a usable path are dropped with a diagnostic; they do
// not abort extraction of their siblings.
func extractLibraryFolders(root *keyvalues.Node) []string {
	folders, ok := blockFold(root, "libraryfolders")
	if !ok {
		log.Warn().Msg("steam: libraryfolders.vdf has no libraryfolders block")
		return nil
	}

	var paths []string
	for _, e := range folders.Entries() {
		if !allDigits(e.Key) {
			// Legacy files mix metadata (TimeNextStatsReport,
			// ContentStatsID) in with the numbered libraries.
			continue
		}

		if !e.Node.IsBlock() {
			if p := e.Node.Value(); p != "" {
				paths = append(paths, p)
			}
			continue
		}

		p, ok := stringFold(e.Node, "path")
		if !ok || p == "" {
			log.Warn().Str("library", e.Key).Msg("steam: library entry has no path, dropping")
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// blockFold is a case-insensitive, last-wins block lookup.
func blockFold(n *keyvalues.Node, key string) (*keyvalues.Node, bool) {
	entries := n.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.EqualFold(entries[i].Key, key) && entries[i].Node.IsBlock() {
			return entries[i].Node, true
		}
	}
	return nil, false
}

// stringFold is a case-insensitive, last-wins scalar lookup.
func stringFold(n *keyvalues.Node, key string) (string, bool) {
	entries := n.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.EqualFold(entries[i].Key, key) && !entries[i].Node.IsBlock() {
			return entries[i].Node.Value(), true
		}
	}
	return "", false
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
