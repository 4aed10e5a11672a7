// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/relabs-tech/home_display/internal/grid"
)

// layoutFile is the TOML layout format:
//
//	[[cell]]
//	identity = "Living Motion"
//	x = 6
//	y = 4
type layoutFile struct {
	Cells []grid.Entry `toml:"cell"`
}

// LoadLayout decodes a TOML layout file. The entries are not validated here;
// grid.NewRegistry does that.
func LoadLayout(path string) ([]grid.Entry, error) {
	var lf layoutFile
	if _, err := toml.DecodeFile(path, &lf); err != nil {
		return nil, fmt.Errorf("failed to decode layout file: %w", err)
	}
	if len(lf.Cells) == 0 {
		return nil, fmt.Errorf("layout file %s has no cells", path)
	}
	return lf.Cells, nil
}

// Layout returns the configured layout, or the built-in one when no layout
// file is set.
func (c *Config) Layout() ([]grid.Entry, error) {
	if c.LayoutFile == "" {
		return grid.DefaultLayout(), nil
	}
	return LoadLayout(c.LayoutFile)
}
