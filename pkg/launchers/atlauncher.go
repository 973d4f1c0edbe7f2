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

const atlauncherFlatpakID = "com.atlauncher.ATLauncher"

// ATLauncher probes Minecraft instances managed by ATLauncher. Each
// instance directory holds an instance.json describing the pack.
type ATLauncher struct {
	rootDir string
	flatpak bool
}

func NewATLauncher(roots Roots) *ATLauncher {
	dir := filepath.Join(roots.Data, "atlauncher")
	flatpak := false
	if !dirExists(dir) {
		dir = flatpakAppPath(roots.Home, atlauncherFlatpakID, "data")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("flatpak", flatpak).Msg("atlauncher: root directory")
	return &ATLauncher{rootDir: dir, flatpak: flatpak}
}

func (*ATLauncher) Variant() games.Variant { return games.MinecraftAT }

func (a *ATLauncher) Detected() bool {
	return dirExists(filepath.Join(a.rootDir, "instances"))
}

func (a *ATLauncher) Games() ([]games.Game, error) {
	instancesDir := filepath.Join(a.rootDir, "instances")
	entries, err := os.ReadDir(instancesDir)
	if err != nil {
		return nil, fmt.Errorf("read atlauncher instances dir: %w", err)
	}

	var result []games.Game
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		instanceDir := filepath.Join(instancesDir, entry.Name())
		name, err := atInstanceName(instanceDir)
		if err != nil {
			log.Warn().Err(err).Str("instance", entry.Name()).
				Msg("atlauncher: skipping unreadable instance")
			continue
		}

		result = append(result, games.Game{
			Title:         minecraftTitle(name),
			ID:            name,
			InstallDir:    instanceDir,
			IconPath:      existingImagePath(instanceDir, "instance"),
			LaunchCommand: a.launchCommand(name),
			Source:        games.MinecraftAT,
		})
	}
	return result, nil
}

func (a *ATLauncher) launchCommand(instance string) games.LaunchCommand {
	args := []string{"--launch", instance}
	if a.flatpak {
		return flatpakCommand(atlauncherFlatpakID, nil, args)
	}
	return command("atlauncher", args)
}

// atInstanceName reads the pack name from instance.json. Newer
// ATLauncher nests it under "launcher"; older releases keep it at the
// top level.
func atInstanceName(instanceDir string) (string, error) {
	path := filepath.Join(instanceDir, "instance.json")
	data, err := os.ReadFile(path) //nolint:gosec // reads ATLauncher's own config
	if err != nil {
		return "", fmt.Errorf("read instance.json: %w", err)
	}

	var instance struct {
		Name     string `json:"name"`
		Launcher struct {
			Name string `json:"name"`
		} `json:"launcher"`
	}
	if err := json.Unmarshal(data, &instance); err != nil {
		return "", fmt.Errorf("parse instance.json: %w", err)
	}

	name := instance.Launcher.Name
	if name == "" {
		name = instance.Name
	}
	if name == "" {
		return "", fmt.Errorf("instance.json in %s has no name", instanceDir)
	}
	return name, nil
}
