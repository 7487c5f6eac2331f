// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/luadense/luadense/internal/densecli"
)

func main() {
	rootCommand := densecli.New()
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "luadense:", err)
		os.Exit(1)
	}
}
