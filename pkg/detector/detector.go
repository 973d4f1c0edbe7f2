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

// Package detector aggregates the per-launcher probes into one query
// surface. A Detector carries no open handles and no background state;
// every query re-reads the launchers' files, so results always reflect
// the filesystem as it is now.
package detector

import (
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/gamescout/gamescout/pkg/games"
	"github.com/gamescout/gamescout/pkg/launchers"
)

// Detector runs every supported launcher probe. Probes are ordered by
// games.Variants, and every query reports results in that order.
type Detector struct {
	probes []games.Probe
}

// New builds a Detector over the conventional XDG base directories.
func New() *Detector {
	return NewWithRoots(launchers.Roots{
		Home:   xdg.Home,
		Config: xdg.ConfigHome,
		Data:   xdg.DataHome,
		Cache:  xdg.CacheHome,
	})
}

// NewWithRoots builds a Detector probing under explicit base
// directories instead of the environment's.
func NewWithRoots(roots launchers.Roots) *Detector {
	return &Detector{probes: []games.Probe{
		launchers.NewSteam(roots),
		launchers.NewSteamShortcuts(roots),
		launchers.NewHeroicEpic(roots),
		launchers.NewHeroicGOG(roots),
		launchers.NewHeroicAmazon(roots),
		launchers.NewHeroicSideload(roots),
		launchers.NewLutris(roots),
		launchers.NewBottles(roots),
		launchers.NewPrism(roots),
		launchers.NewATLauncher(roots),
		launchers.NewItch(roots),
	}}
}

// DetectedLaunchers returns the variants whose launcher looks
// installed, in probe order.
func (d *Detector) DetectedLaunchers() []games.Variant {
	var detected []games.Variant
	for _, probe := range d.probes {
		if probe.Detected() {
			detected = append(detected, probe.Variant())
		}
	}
	return detected
}

// LauncherGames pairs a detected launcher with the games found for it.
type LauncherGames struct {
	Games    []games.Game
	Launcher games.Variant
}

// GamesPerLauncher scans every detected launcher and returns one entry
// per launcher in probe order. Launchers that are installed but have
// no games still get an entry; launchers that are not installed do
// not. A failing probe contributes an empty list, never an error.
func (d *Detector) GamesPerLauncher() []LauncherGames {
	detected := make([]games.Probe, 0, len(d.probes))
	for _, probe := range d.probes {
		if probe.Detected() {
			detected = append(detected, probe)
		}
	}

	results := make([][]games.Game, len(detected))
	var group errgroup.Group
	for i, probe := range detected {
		i, probe := i, probe
		group.Go(func() error {
			list, err := probe.Games()
			if err != nil {
				log.Warn().Err(err).
					Stringer("launcher", probe.Variant()).
					Msg("detector: probe failed")
				return nil
			}
			results[i] = list
			return nil
		})
	}
	// Probes only ever return nil through the group.
	_ = group.Wait()

	merged := make([]LauncherGames, len(detected))
	for i, probe := range detected {
		merged[i] = LauncherGames{Launcher: probe.Variant(), Games: results[i]}
	}
	return merged
}

// AllGames returns every detected game as one flat list, ordered by
// probe and then by each probe's own ordering.
func (d *Detector) AllGames() []games.Game {
	var all []games.Game
	for _, entry := range d.GamesPerLauncher() {
		all = append(all, entry.Games...)
	}
	return all
}

// AllGamesWithBoxArt returns only the detected games that have box art
// on disk.
func (d *Detector) AllGamesWithBoxArt() []games.Game {
	var withArt []games.Game
	for _, game := range d.AllGames() {
		if game.BoxArtPath != "" {
			withArt = append(withArt, game)
		}
	}
	return withArt
}

// GamesFromLauncher scans one launcher. It returns nil when the
// launcher is not installed.
func (d *Detector) GamesFromLauncher(variant games.Variant) ([]games.Game, error) {
	for _, probe := range d.probes {
		if probe.Variant() != variant {
			continue
		}
		if !probe.Detected() {
			return nil, nil
		}
		return probe.Games()
	}
	return nil, nil
}
