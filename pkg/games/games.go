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

// Package games defines the data model shared by every launcher probe:
// the Game record, the closed set of supported launcher variants and
// the Probe contract the detector aggregates over.
package games

import "path/filepath"

// Variant identifies one supported game source. The set is fixed at
// compile time; each variant has exactly one Probe implementation.
type Variant int

const (
	Steam Variant = iota
	SteamShortcuts
	HeroicEpic
	HeroicGOG
	HeroicAmazon
	HeroicSideload
	Lutris
	Bottles
	MinecraftPrism
	MinecraftAT
	Itch
)

// Variants returns every supported variant in the stable order probes
// run in.
func Variants() []Variant {
	return []Variant{
		Steam,
		SteamShortcuts,
		HeroicEpic,
		HeroicGOG,
		HeroicAmazon,
		HeroicSideload,
		Lutris,
		Bottles,
		MinecraftPrism,
		MinecraftAT,
		Itch,
	}
}

func (v Variant) String() string {
	switch v {
	case Steam:
		return "Steam"
	case SteamShortcuts:
		return "Steam (shortcuts)"
	case HeroicEpic:
		return "Heroic Games Launcher (Epic Games Store)"
	case HeroicGOG:
		return "Heroic Games Launcher (GOG)"
	case HeroicAmazon:
		return "Heroic Games Launcher (Amazon Prime Gaming)"
	case HeroicSideload:
		return "Heroic Games Launcher (Sideload)"
	case Lutris:
		return "Lutris"
	case Bottles:
		return "Bottles"
	case MinecraftPrism:
		return "Prism Launcher"
	case MinecraftAT:
		return "ATLauncher"
	case Itch:
		return "itch"
	default:
		return "unknown"
	}
}

// MarshalText renders the variant name so encoded output stays
// readable.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// LaunchCommand is the argv and environment needed to start a game. It
// is data, not a handle: the library never spawns processes.
type LaunchCommand struct {
	Program string
	Args    []string
	Env     []string // extra KEY=VALUE entries
}

// Argv returns the full argument vector, program first.
func (c LaunchCommand) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// Game is one detected installation.
type Game struct {
	// Title is the display name. Probes never emit a Game with an
	// empty title.
	Title string
	// ID is the launcher-native identifier, when the launcher has one.
	ID string
	// InstallDir is the game's root directory, when it was found.
	InstallDir string
	// BoxArtPath points at cached box art, when the launcher keeps any.
	BoxArtPath string
	// IconPath points at a cached icon, when the launcher keeps one.
	IconPath string
	// LaunchCommand starts the game through its owning launcher.
	LaunchCommand LaunchCommand
	// Source is the launcher that owns this installation.
	Source Variant
}

// Identity uniquely identifies a game within its source launcher: the
// native ID when there is one, otherwise the cleaned install path.
func (g Game) Identity() string {
	if g.ID != "" {
		return g.Source.String() + "/" + g.ID
	}
	return g.Source.String() + "/" + filepath.Clean(g.InstallDir)
}

// Probe is the detection unit for one launcher variant.
//
// Detected is independent of whether any games are found: it reports
// only whether the launcher's defining artifact exists on disk. Games
// is only meaningful when Detected reports true; callers short-circuit
// on false and must treat a Games error as "no games from this source"
// rather than a fatal condition.
type Probe interface {
	Variant() Variant
	Detected() bool
	Games() ([]Game, error)
}
