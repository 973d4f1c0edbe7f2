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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/pkg/games"
)

func TestATLauncherDetected(t *testing.T) {
	t.Parallel()

	t.Run("installed", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		mkdir(t, filepath.Join(roots.Data, "atlauncher", "instances"))
		assert.True(t, NewATLauncher(roots).Detected())
	})

	t.Run("not_installed", func(t *testing.T) {
		t.Parallel()
		assert.False(t, NewATLauncher(testRoots(t)).Detected())
	})
}

func TestATLauncherGames(t *testing.T) {
	t.Parallel()

	t.Run("instances", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		instanceDir := filepath.Join(roots.Data, "atlauncher", "instances", "SkyFactory5")
		writeFile(t, filepath.Join(instanceDir, "instance.json"),
			`{"launcher": {"name": "SkyFactory 5"}}`)
		writeFile(t, filepath.Join(instanceDir, "instance.png"), "png")

		list, err := NewATLauncher(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)

		game := list[0]
		assert.Equal(t, "Minecraft: SkyFactory 5", game.Title)
		assert.Equal(t, "SkyFactory 5", game.ID)
		assert.Equal(t, instanceDir, game.InstallDir)
		assert.Equal(t, filepath.Join(instanceDir, "instance.png"), game.IconPath)
		assert.Equal(t, games.MinecraftAT, game.Source)
		assert.Equal(t,
			[]string{"atlauncher", "--launch", "SkyFactory 5"},
			game.LaunchCommand.Argv())
	})

	t.Run("top_level_name_fallback", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		instanceDir := filepath.Join(roots.Data, "atlauncher", "instances", "OldPack")
		writeFile(t, filepath.Join(instanceDir, "instance.json"), `{"name": "Old Pack"}`)

		list, err := NewATLauncher(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Old Pack", list[0].ID)
	})

	t.Run("flatpak_launch_command", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		writeFile(t, flatpakAppPath(roots.Home, atlauncherFlatpakID,
			"data", "instances", "Vanilla", "instance.json"),
			`{"launcher": {"name": "Vanilla"}}`)

		probe := NewATLauncher(roots)
		require.True(t, probe.Detected())

		list, err := probe.Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t,
			[]string{"flatpak", "run", atlauncherFlatpakID, "--launch", "Vanilla"},
			list[0].LaunchCommand.Argv())
	})

	t.Run("corrupt_instance_skipped", func(t *testing.T) {
		t.Parallel()
		roots := testRoots(t)
		instancesDir := filepath.Join(roots.Data, "atlauncher", "instances")
		writeFile(t, filepath.Join(instancesDir, "Broken", "instance.json"), `{not json`)
		writeFile(t, filepath.Join(instancesDir, "Working", "instance.json"),
			`{"launcher": {"name": "Working"}}`)

		list, err := NewATLauncher(roots).Games()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Working", list[0].ID)
	})
}
