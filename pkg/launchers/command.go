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

import "github.com/gamescout/gamescout/pkg/games"

// command builds a launch command for a natively installed launcher.
func command(program string, args []string, env ...string) games.LaunchCommand {
	return games.LaunchCommand{Program: program, Args: args, Env: env}
}

// flatpakCommand builds a launch command routed through `flatpak run`.
// flatpakArgs come before the app ID (e.g. --command overrides), args
// after it.
func flatpakCommand(appID string, flatpakArgs, args []string, env ...string) games.LaunchCommand {
	full := make([]string, 0, len(flatpakArgs)+len(args)+2)
	full = append(full, "run")
	full = append(full, flatpakArgs...)
	full = append(full, appID)
	full = append(full, args...)
	return games.LaunchCommand{Program: "flatpak", Args: full, Env: env}
}
