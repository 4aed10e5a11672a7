// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/home_display/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
