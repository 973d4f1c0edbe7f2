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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/gamescout/gamescout/pkg/games"
	"github.com/gamescout/gamescout/pkg/keyvalues"
	"github.com/rs/zerolog/log"
)

const steamFlatpakID = "com.valvesoftware.Steam"

// Steam probes regular Steam installations:
//   - ~/.local/share/Steam/
//   - Flatpak: ~/.var/app/com.valvesoftware.Steam/data/Steam/
type Steam struct {
	steamDir string
	flatpak  bool
}

// NewSteam resolves the Steam root directory, preferring the native
// install and falling back to the Flatpak one.
func NewSteam(roots Roots) *Steam {
	dir := filepath.Join(roots.Data, "Steam")
	flatpak := false
	if !dirExists(dir) {
		log.Debug().Msg("steam: native install not found, trying flatpak")
		dir = flatpakAppPath(roots.Home, steamFlatpakID, "data", "Steam")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("exists", dirExists(dir)).Msg("steam: root directory")
	return &Steam{steamDir: dir, flatpak: flatpak}
}

func (*Steam) Variant() games.Variant { return games.Steam }

func (s *Steam) Detected() bool { return dirExists(s.steamDir) }

// Games parses libraryfolders.vdf for every Steam library, then one
// app manifest per installed app. An unreadable library skips to the
// next library; an unreadable manifest skips to the next manifest.
func (s *Steam) Games() ([]games.Game, error) {
	libraries, err := s.libraries()
	if err != nil {
		return nil, err
	}
	if len(libraries) == 0 {
		log.Warn().Msg("steam: no libraries found")
		return nil, nil
	}

	var all []games.Game
	for _, library := range libraries {
		libraryGames, err := s.libraryGames(library)
		if err != nil {
			log.Warn().Err(err).Str("library", library).Msg("steam: skipping unreadable library")
			continue
		}
		all = append(all, libraryGames...)
	}

	if len(all) == 0 {
		log.Warn().Msg("steam: no games found")
	}
	return all, nil
}

// libraries returns every Steam library root listed in
// libraryfolders.vdf.
func (s *Steam) libraries() ([]string, error) {
	path := filepath.Join(steamAppsDir(s.steamDir), "libraryfolders.vdf")

	f, err := os.Open(path) //nolint:gosec // reads Steam's own config
	if err != nil {
		return nil, fmt.Errorf("open libraryfolders.vdf: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("steam: error closing libraryfolders.vdf")
		}
	}()

	root, err := keyvalues.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse libraryfolders.vdf: %w", err)
	}
	return extractLibraryFolders(root), nil
}

func (s *Steam) libraryGames(library string) ([]games.Game, error) {
	appsDir := steamAppsDir(library)
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		return nil, fmt.Errorf("read steamapps dir: %w", err)
	}

	var result []games.Game
	for _, entry := range entries {
		if !matchesManifestFilename(entry.Name()) {
			continue
		}
		if game, ok := s.game(appsDir, filepath.Join(appsDir, entry.Name())); ok {
			result = append(result, game)
		}
	}

	if len(result) == 0 {
		log.Warn().Str("library", library).Msg("steam: no app manifests in library")
	}
	return result, nil
}

// game builds a Game from one app manifest file. Any failure skips the
// file, never the library.
func (s *Steam) game(appsDir, manifestPath string) (games.Game, bool) {
	f, err := os.Open(manifestPath) //nolint:gosec // reads Steam's own manifests
	if err != nil {
		log.Warn().Err(err).Str("path", manifestPath).Msg("steam: cannot open manifest")
		return games.Game{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("steam: error closing manifest")
		}
	}()

	root, err := keyvalues.Parse(f)
	if err != nil {
		log.Warn().Err(err).Str("path", manifestPath).Msg("steam: skipping unparsable manifest")
		return games.Game{}, false
	}

	manifest, err := extractAppManifest(root)
	if err != nil {
		log.Warn().Err(err).Str("path", manifestPath).Msg("steam: dropping incomplete manifest")
		return games.Game{}, false
	}

	boxArt, icon := s.libraryCacheImages(manifest.AppID)
	if boxArt == "" {
		// Entries with no box art are runtimes, redistributables or
		// DLC rather than games.
		log.Debug().Str("title", manifest.Name).Msg("steam: skipping entry without box art")
		return games.Game{}, false
	}

	installDir := filepath.Join(appsDir, "common", manifest.InstallDir)
	if !dirExists(installDir) {
		installDir = ""
	}

	return games.Game{
		Title:         manifest.Name,
		ID:            manifest.AppID,
		InstallDir:    installDir,
		BoxArtPath:    boxArt,
		IconPath:      icon,
		LaunchCommand: steamLaunchCommand(manifest.AppID, s.flatpak),
		Source:        games.Steam,
	}, true
}

// libraryCacheImages finds cached box art and icon for an app. Old
// Steam versions keep flat <appid>_*.jpg files; newer ones keep a
// directory per app with images up to two levels deep.
func (s *Steam) libraryCacheImages(appID string) (boxArt, icon string) {
	cacheDir := filepath.Join(s.steamDir, "appcache", "librarycache")

	if p := filepath.Join(cacheDir, appID+"_library_600x900.jpg"); fileExists(p) {
		boxArt = p
	}
	if p := filepath.Join(cacheDir, appID+"_icon.jpg"); fileExists(p) {
		icon = p
	}

	appDir := filepath.Join(cacheDir, appID)
	if !dirExists(appDir) {
		return boxArt, icon
	}

	// Icon files in the new layout are hash-named:
	// a4c7a8cce43d797c275aaf601d6855b90ba87769.jpg
	const hashedIconLen = len("a4c7a8cce43d797c275aaf601d6855b90ba87769.jpg")

	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, appDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(appDir, path)
			if relErr == nil && strings.Count(rel, string(filepath.Separator)) >= 1 {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		mu.Lock()
		defer mu.Unlock()
		switch {
		case name == "library_600x900.jpg" || name == "library_capsule.jpg":
			boxArt = path
		case len(name) == hashedIconLen && strings.HasSuffix(name, ".jpg"):
			icon = path
		}
		return nil
	})
	if err != nil {
		log.Debug().Err(err).Str("appID", appID).Msg("steam: library cache walk failed")
	}

	return boxArt, icon
}

func steamLaunchCommand(appID string, flatpak bool) games.LaunchCommand {
	uri := "steam://rungameid/" + appID
	if flatpak {
		return flatpakCommand(steamFlatpakID, nil, []string{uri})
	}
	return command("steam", []string{uri})
}

// steamAppsDir resolves the steamapps directory under parent. Some
// systems capitalise it.
func steamAppsDir(parent string) string {
	capitalised := filepath.Join(parent, "Steamapps")
	if dirExists(capitalised) {
		return capitalised
	}
	return filepath.Join(parent, "steamapps")
}

// matchesManifestFilename reports whether name is exactly
// appmanifest_<id>.acf. Steam leaves appmanifest_*.acf.tmp files around
// that must not be picked up.
func matchesManifestFilename(name string) bool {
	id, ok := strings.CutPrefix(name, "appmanifest_")
	if !ok {
		return false
	}
	id, ok = strings.CutSuffix(id, ".acf")
	if !ok {
		return false
	}
	return allDigits(id)
}
