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

// gamescout lists the games installed through the launchers on this
// machine.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gamescout/gamescout/pkg/detector"
	"github.com/gamescout/gamescout/pkg/games"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	asJSON := flag.Bool(
		"json",
		false,
		"print games as JSON",
	)
	boxArtOnly := flag.Bool(
		"box-art",
		false,
		"only list games with box art",
	)
	launcher := flag.String(
		"launcher",
		"",
		"only scan one launcher (e.g. \"Steam\", \"Lutris\")",
	)
	debug := flag.Bool(
		"debug",
		false,
		"enable debug logging",
	)
	flag.Parse()

	level := zerolog.WarnLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)

	d := detector.New()

	var list []games.Game
	switch {
	case *launcher != "":
		variant, err := variantByName(*launcher)
		if err != nil {
			return err
		}
		scanned, err := d.GamesFromLauncher(variant)
		if err != nil {
			return fmt.Errorf("scan %s: %w", variant, err)
		}
		list = scanned
	case *boxArtOnly:
		list = d.AllGamesWithBoxArt()
	default:
		list = d.AllGames()
	}

	if *asJSON {
		return printJSON(list)
	}
	printText(list)
	return nil
}

func variantByName(name string) (games.Variant, error) {
	for _, variant := range games.Variants() {
		if strings.EqualFold(variant.String(), name) {
			return variant, nil
		}
	}

	names := make([]string, 0, len(games.Variants()))
	for _, variant := range games.Variants() {
		names = append(names, variant.String())
	}
	return 0, fmt.Errorf("unknown launcher %q (known: %s)",
		name, strings.Join(names, ", "))
}

func printText(list []games.Game) {
	if len(list) == 0 {
		fmt.Println("No games found.")
		return
	}
	for _, game := range list {
		fmt.Printf("%s [%s]\n", game.Title, game.Source)
		fmt.Printf("  launch: %s\n", strings.Join(game.LaunchCommand.Argv(), " "))
		if game.InstallDir != "" {
			fmt.Printf("  installed at: %s\n", game.InstallDir)
		}
		if game.BoxArtPath != "" {
			fmt.Printf("  box art: %s\n", game.BoxArtPath)
		}
	}
}

func printJSON(list []games.Game) error {
	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(list); err != nil {
		return fmt.Errorf("encode games: %w", err)
	}
	return nil
}
