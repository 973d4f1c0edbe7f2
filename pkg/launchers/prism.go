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

	"gopkg.in/ini.v1"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/rs/zerolog/log"
)

const prismFlatpakID = "org.prismlauncher.PrismLauncher"

// Prism probes Minecraft instances managed by Prism Launcher. The
// launcher config names the instances directory, which may be relative
// to the launcher root.
type Prism struct {
	rootDir string
	flatpak bool
}

func NewPrism(roots Roots) *Prism {
	dir := filepath.Join(roots.Data, "PrismLauncher")
	flatpak := false
	if !fileExists(filepath.Join(dir, "prismlauncher.cfg")) {
		dir = flatpakAppPath(roots.Home, prismFlatpakID, "data", "PrismLauncher")
		flatpak = true
	}
	log.Debug().Str("path", dir).Bool("flatpak", flatpak).Msg("prism: launcher directory")
	return &Prism{rootDir: dir, flatpak: flatpak}
}

func (*Prism) Variant() games.Variant { return games.MinecraftPrism }

func (p *Prism) Detected() bool {
	return fileExists(filepath.Join(p.rootDir, "prismlauncher.cfg"))
}

func (p *Prism) Games() ([]games.Game, error) {
	instancesDir, err := p.instancesDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(instancesDir)
	if err != nil {
		return nil, fmt.Errorf("read prism instances dir: %w", err)
	}

	var result []games.Game
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		instanceDir := filepath.Join(instancesDir, entry.Name())
		if !fileExists(filepath.Join(instanceDir, "instance.cfg")) {
			continue
		}
		result = append(result, games.Game{
			Title:         minecraftTitle(entry.Name()),
			ID:            entry.Name(),
			InstallDir:    instanceDir,
			IconPath:      prismInstanceIcon(instanceDir),
			LaunchCommand: p.launchCommand(entry.Name()),
			Source:        games.MinecraftPrism,
		})
	}
	return result, nil
}

// instancesDir reads the configured instance directory, defaulting to
// "instances" under the launcher root. Prism writes the key either at
// the top level or under [General] depending on version.
func (p *Prism) instancesDir() (string, error) {
	configPath := filepath.Join(p.rootDir, "prismlauncher.cfg")
	config, err := ini.Load(configPath)
	if err != nil {
		return "", fmt.Errorf("parse prism config: %w", err)
	}

	dir := config.Section("General").Key("InstanceDir").String()
	if dir == "" {
		dir = config.Section(ini.DefaultSection).Key("InstanceDir").String()
	}
	if dir == "" {
		dir = "instances"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(p.rootDir, dir)
	}
	return dir, nil
}

// prismInstanceIcon finds the instance icon, checking the locations
// Prism has used across versions.
func prismInstanceIcon(instanceDir string) string {
	for _, candidate := range []string{
		filepath.Join(instanceDir, "icon.png"),
		filepath.Join(instanceDir, "minecraft", "icon.png"),
		filepath.Join(instanceDir, ".minecraft", "icon.png"),
	} {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func (p *Prism) launchCommand(instance string) games.LaunchCommand {
	args := []string{"--launch", instance}
	if p.flatpak {
		return flatpakCommand(prismFlatpakID, nil, args)
	}
	return command("prismlauncher", args)
}
