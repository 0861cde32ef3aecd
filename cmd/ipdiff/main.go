// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/netzlab/ipdiff/internal/cli"
)

func main() {
	// optional .env, absence is fine
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env", "err", err)
	}

	os.Exit(cli.Execute())
}
