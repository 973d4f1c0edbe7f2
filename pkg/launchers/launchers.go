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

// Package launchers implements one probe per supported game launcher.
//
// Every probe follows the same shape: the constructor resolves the
// launcher's conventional directories (falling back to the Flatpak
// install when the native one is missing), Detected checks only that
// the defining artifact exists, and Games enumerates the launcher's
// data sources, skipping any single corrupt source with a diagnostic
// instead of failing the probe.
//
// All filesystem access is read-only.
package launchers

import "strings"

// Roots are the base directories probes resolve their candidate paths
// under. Production code fills these from XDG; tests point them at a
// fixture tree.
type Roots struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// cleanTitle strips trademark glyphs launchers leave in display names.
func cleanTitle(title string) string {
	return strings.ReplaceAll(strings.ReplaceAll(title, "™", ""), "®", "")
}

// minecraftTitle prefixes a Minecraft instance name so instances from
// different launchers read consistently next to regular games.
func minecraftTitle(instance string) string {
	return "Minecraft: " + instance
}
