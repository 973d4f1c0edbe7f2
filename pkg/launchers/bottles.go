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
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/rs/zerolog/log"
)

const bottlesFlatpakID = "com.usebottles.bottles"

// Bottles probes programs added to the library of Bottles, the Wine
// prefix manager. The library file names each program and its bottle;
// install directories come from the per-bottle config.
type Bottles struct {
	dataDir string
	flatpak bool
}

func NewBottles(roots Roots) *Bottles {
	dir := filepath.Join(roots.Data, "bottles")
	flatpak := false
	if !fileExists(filepath.Join(dir, "library.yml")) {
		dir = flatpakAppPath(roots.Home, bottlesFlatpakID, "data", "bottles")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("flatpak", flatpak).Msg("bottles: data directory")
	return &Bottles{dataDir: dir, flatpak: flatpak}
}

func (*Bottles) Variant() games.Variant { return games.Bottles }

func (b *Bottles) Detected() bool {
	return fileExists(filepath.Join(b.dataDir, "library.yml"))
}

// bottlesLibraryEntry is one program in library.yml. The file is a map
// keyed by opaque entry UUIDs.
type bottlesLibraryEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Thumbnail string `yaml:"thumbnail"`
	Icon      string `yaml:"icon"`
	Bottle    struct {
		Name string `yaml:"name"`
		Path string `yaml:"path"`
	} `yaml:"bottle"`
}

// bottlesConfig is the part of a bottle.yml we need: per-program
// install folders, keyed by program UUID.
type bottlesConfig struct {
	ExternalPrograms map[string]struct {
		ID     string `yaml:"id"`
		Folder string `yaml:"folder"`
	} `yaml:"External_Programs"`
}

func (b *Bottles) Games() ([]games.Game, error) {
	libraryPath := filepath.Join(b.dataDir, "library.yml")
	data, err := os.ReadFile(libraryPath) //nolint:gosec // reads Bottles' own config
	if err != nil {
		return nil, fmt.Errorf("read bottles library: %w", err)
	}

	library, err := parseBottlesLibrary(data)
	if err != nil {
		return nil, err
	}

	// Per-bottle configs are parsed once and shared across entries.
	folders := make(map[string]map[string]string)

	result := make([]games.Game, 0, len(library))
	for _, entry := range library {
		if entry.Name == "" || entry.Bottle.Name == "" {
			log.Warn().Str("id", entry.ID).Msg("bottles: library entry missing name or bottle")
			continue
		}

		byProgram, ok := folders[entry.Bottle.Path]
		if !ok {
			byProgram = b.programFolders(entry.Bottle.Path)
			folders[entry.Bottle.Path] = byProgram
		}

		// Library entries whose program no longer exists in the
		// bottle's own config are leftovers from removed programs.
		installDir, ok := byProgram[entry.ID]
		if !ok {
			log.Debug().Str("name", entry.Name).Msg("bottles: no bottle config entry, dropping")
			continue
		}
		if !dirExists(installDir) {
			installDir = ""
		}

		icon := entry.Icon
		if !fileExists(icon) {
			icon = ""
		}

		result = append(result, games.Game{
			Title:         cleanTitle(entry.Name),
			ID:            entry.ID,
			InstallDir:    installDir,
			BoxArtPath:    b.thumbnailPath(entry.Bottle.Path, entry.Thumbnail),
			IconPath:      icon,
			LaunchCommand: b.launchCommand(entry.Name, entry.Bottle.Name),
			Source:        games.Bottles,
		})
	}
	return result, nil
}

// parseBottlesLibrary decodes library.yml, a mapping keyed by opaque
// entry UUIDs. Decoding through yaml.Node instead of a Go map keeps
// the entries in document order, so repeated scans list games the way
// the file does.
func parseBottlesLibrary(data []byte) ([]bottlesLibraryEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse bottles library: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse bottles library: document is not a mapping")
	}

	entries := make([]bottlesLibraryEntry, 0, len(mapping.Content)/2)
	for i := 1; i < len(mapping.Content); i += 2 {
		var entry bottlesLibraryEntry
		if err := mapping.Content[i].Decode(&entry); err != nil {
			return nil, fmt.Errorf("parse bottles library entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// programFolders reads a bottle's config and maps program UUIDs to
// their install folders. A missing or corrupt config only costs the
// install directories, so errors are logged and swallowed.
func (b *Bottles) programFolders(bottlePath string) map[string]string {
	configPath := filepath.Join(b.dataDir, "bottles", bottlePath, "bottle.yml")
	data, err := os.ReadFile(configPath) //nolint:gosec // reads Bottles' own config
	if err != nil {
		log.Debug().Err(err).Str("path", configPath).Msg("bottles: cannot read bottle config")
		return nil
	}

	var config bottlesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("bottles: cannot parse bottle config")
		return nil
	}

	byProgram := make(map[string]string, len(config.ExternalPrograms))
	for _, program := range config.ExternalPrograms {
		if program.ID != "" && program.Folder != "" {
			byProgram[program.ID] = program.Folder
		}
	}
	return byProgram
}

// thumbnailPath resolves a library thumbnail reference. Grid
// references ("grid:<file>") live under the bottle's grids directory;
// anything else has no cover on disk.
func (b *Bottles) thumbnailPath(bottlePath, thumbnail string) string {
	name, ok := strings.CutPrefix(thumbnail, "grid:")
	if !ok || name == "" {
		return ""
	}
	path := filepath.Join(b.dataDir, "bottles", bottlePath, "grids", name)
	if !fileExists(path) {
		return ""
	}
	return path
}

func (b *Bottles) launchCommand(program, bottle string) games.LaunchCommand {
	args := []string{"run", "-p", program, "-b", bottle}
	if b.flatpak {
		return flatpakCommand(bottlesFlatpakID,
			[]string{"--command=bottles-cli"}, args)
	}
	return command("bottles-cli", args)
}
