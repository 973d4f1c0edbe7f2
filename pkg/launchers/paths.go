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
)

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// existingImagePath returns the first of name.png, name.jpg, name.jpeg
// that exists under dir, or "" when none do.
func existingImagePath(dir, name string) string {
	for _, ext := range []string{"png", "jpg", "jpeg"} {
		p := filepath.Join(dir, name+"."+ext)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// flatpakAppPath resolves a path under a Flatpak app's private
// directory (~/.var/app/<appID>/...).
func flatpakAppPath(home, appID string, parts ...string) string {
	return filepath.Join(append([]string{home, ".var", "app", appID}, parts...)...)
}
