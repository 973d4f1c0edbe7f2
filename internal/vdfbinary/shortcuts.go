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

package vdfbinary

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Shortcut is one non-Steam game the user registered with Steam.
type Shortcut struct {
	AppName  string
	Exe      string
	StartDir string
	Icon     string
	AppID    uint32
	IsHidden bool
}

// ParseShortcuts parses Steam's shortcuts.vdf. Only the app name is
// strictly required per record; third-party tools (EmuDeck, Lutris)
// write shortcuts with most other fields missing.
func ParseShortcuts(r io.Reader) ([]Shortcut, error) {
	root, err := Parse(r)
	if err != nil {
		return nil, err
	}

	records, ok := root.GetBlock("shortcuts")
	if !ok {
		return nil, errors.New("vdfbinary: no 'shortcuts' block in parsed vdf")
	}

	// Records are keyed "0", "1", ... in a block standing in for an array.
	shortcuts := make([]Shortcut, 0, len(records))
	for i := 0; i < len(records); i++ {
		record, ok := records.GetBlock(strconv.Itoa(i))
		if !ok {
			return nil, fmt.Errorf("vdfbinary: shortcut index %d missing from block", i)
		}

		appName, ok := record.GetString("AppName")
		if !ok {
			return nil, fmt.Errorf("vdfbinary: shortcut %d has no AppName", i)
		}

		appID, _ := record.GetUint("appid")
		exe, _ := record.GetString("Exe")
		startDir, _ := record.GetString("StartDir")
		icon, _ := record.GetString("icon")
		isHidden, _ := record.GetBool("IsHidden")

		shortcuts = append(shortcuts, Shortcut{
			AppName:  appName,
			Exe:      exe,
			StartDir: startDir,
			Icon:     icon,
			AppID:    appID,
			IsHidden: isHidden,
		})
	}

	return shortcuts, nil
}
