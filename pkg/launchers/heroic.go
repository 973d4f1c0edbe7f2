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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/rs/zerolog/log"
)

const heroicFlatpakID = "com.heroicgameslauncher.hgl"

// heroicConfigDir resolves Heroic's config directory, falling back to
// the Flatpak install when the native one is absent.
func heroicConfigDir(roots Roots) (string, bool) {
	dir := filepath.Join(roots.Config, "heroic")
	if !dirExists(dir) {
		return flatpakAppPath(roots.Home, heroicFlatpakID, "config", "heroic"), true
	}
	return dir, false
}

// heroicCommand builds the heroic:// deep link. A native Heroic has
// registered the scheme, so xdg-open reaches it; the Flatpak one is
// invoked directly.
func heroicCommand(store, appID string, flatpak bool) games.LaunchCommand {
	uri := "heroic://launch/" + store + "/" + appID
	if flatpak {
		return flatpakCommand(heroicFlatpakID, nil, []string{uri})
	}
	return command("xdg-open", []string{uri})
}

// heroicLibraryEntry is one game in any of Heroic's store caches.
// Legendary and Nile record the install path flat or nested depending
// on version; sideloaded apps call it folder_name.
type heroicLibraryEntry struct {
	AppName     string `json:"app_name"`
	Title       string `json:"title"`
	InstallPath string `json:"install_path"`
	FolderName  string `json:"folder_name"`
	Install     struct {
		InstallPath string `json:"install_path"`
	} `json:"install"`
	IsInstalled bool `json:"is_installed"`
}

func (e *heroicLibraryEntry) installPath() string {
	switch {
	case e.InstallPath != "":
		return e.InstallPath
	case e.Install.InstallPath != "":
		return e.Install.InstallPath
	default:
		return e.FolderName
	}
}

// heroicLibraryFile is the envelope around a store cache. Legendary and
// Nile caches use "library"; sideload libraries use "games".
type heroicLibraryFile struct {
	Library []heroicLibraryEntry `json:"library"`
	Games   []heroicLibraryEntry `json:"games"`
}

func (f *heroicLibraryFile) entries() []heroicLibraryEntry {
	if len(f.Library) > 0 {
		return f.Library
	}
	return f.Games
}

// HeroicStore probes one store backend of the Heroic Games Launcher.
// Epic, Amazon and sideloaded games share a library file shape and
// only differ in where the file lives and the deep-link store name.
type HeroicStore struct {
	configDir   string
	libraryPath string
	store       string
	variant     games.Variant
	flatpak     bool
}

// NewHeroicEpic probes Epic Games Store games installed through
// Heroic's bundled Legendary.
func NewHeroicEpic(roots Roots) *HeroicStore {
	dir, flatpak := heroicConfigDir(roots)
	return &HeroicStore{
		configDir:   dir,
		libraryPath: filepath.Join(dir, "store_cache", "legendary_library.json"),
		store:       "legendary",
		variant:     games.HeroicEpic,
		flatpak:     flatpak,
	}
}

// NewHeroicAmazon probes Amazon Games installed through Heroic's
// bundled Nile.
func NewHeroicAmazon(roots Roots) *HeroicStore {
	dir, flatpak := heroicConfigDir(roots)
	return &HeroicStore{
		configDir:   dir,
		libraryPath: filepath.Join(dir, "store_cache", "nile_library.json"),
		store:       "nile",
		variant:     games.HeroicAmazon,
		flatpak:     flatpak,
	}
}

// NewHeroicSideload probes games the user added to Heroic by hand.
func NewHeroicSideload(roots Roots) *HeroicStore {
	dir, flatpak := heroicConfigDir(roots)
	return &HeroicStore{
		configDir:   dir,
		libraryPath: filepath.Join(dir, "sideload_apps", "library.json"),
		store:       "sideload",
		variant:     games.HeroicSideload,
		flatpak:     flatpak,
	}
}

func (h *HeroicStore) Variant() games.Variant { return h.variant }

func (h *HeroicStore) Detected() bool { return fileExists(h.libraryPath) }

func (h *HeroicStore) Games() ([]games.Game, error) {
	data, err := os.ReadFile(h.libraryPath) //nolint:gosec // reads Heroic's own config
	if err != nil {
		return nil, fmt.Errorf("read heroic library %s: %w", h.libraryPath, err)
	}

	var library heroicLibraryFile
	if err := json.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("parse heroic library %s: %w", h.libraryPath, err)
	}

	entries := library.entries()
	result := make([]games.Game, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsInstalled || entry.Title == "" {
			continue
		}
		if entry.AppName == "" {
			log.Warn().Str("title", entry.Title).Msg("heroic: library entry has no app name")
			continue
		}
		installDir := entry.installPath()
		if !dirExists(installDir) {
			installDir = ""
		}
		result = append(result, games.Game{
			Title:         cleanTitle(entry.Title),
			ID:            entry.AppName,
			InstallDir:    installDir,
			BoxArtPath:    heroicImagePath(h.configDir, entry.AppName),
			LaunchCommand: heroicCommand(h.store, entry.AppName, h.flatpak),
			Source:        h.variant,
		})
	}
	return result, nil
}

// heroicImagePath returns the cover Heroic cached for an app, if any.
func heroicImagePath(configDir, appID string) string {
	return existingImagePath(filepath.Join(configDir, "icons"), appID)
}

// HeroicGOG probes GOG games installed through Heroic's bundled gogdl.
// GOG keeps its own installed list instead of a store cache, and the
// entries carry no title, only the install path.
type HeroicGOG struct {
	configDir     string
	installedPath string
	flatpak       bool
}

func NewHeroicGOG(roots Roots) *HeroicGOG {
	dir, flatpak := heroicConfigDir(roots)
	return &HeroicGOG{
		configDir:     dir,
		installedPath: filepath.Join(dir, "gog_store", "installed.json"),
		flatpak:       flatpak,
	}
}

func (*HeroicGOG) Variant() games.Variant { return games.HeroicGOG }

func (h *HeroicGOG) Detected() bool { return fileExists(h.installedPath) }

func (h *HeroicGOG) Games() ([]games.Game, error) {
	data, err := os.ReadFile(h.installedPath) //nolint:gosec // reads Heroic's own config
	if err != nil {
		return nil, fmt.Errorf("read heroic gog installed list: %w", err)
	}

	var installed struct {
		Installed []struct {
			AppName     string `json:"appName"`
			InstallPath string `json:"install_path"`
		} `json:"installed"`
	}
	if err := json.Unmarshal(data, &installed); err != nil {
		return nil, fmt.Errorf("parse heroic gog installed list: %w", err)
	}

	result := make([]games.Game, 0, len(installed.Installed))
	for _, entry := range installed.Installed {
		if entry.AppName == "" || entry.InstallPath == "" {
			continue
		}
		// The installed list has no title field. The install directory
		// is named after the game, so its last segment serves as one.
		title := filepath.Base(entry.InstallPath)
		installDir := entry.InstallPath
		if !dirExists(installDir) {
			installDir = ""
		}
		result = append(result, games.Game{
			Title:         cleanTitle(title),
			ID:            entry.AppName,
			InstallDir:    installDir,
			BoxArtPath:    heroicImagePath(h.configDir, entry.AppName),
			LaunchCommand: heroicCommand("gog", entry.AppName, h.flatpak),
			Source:        games.HeroicGOG,
		})
	}
	return result, nil
}
