/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopagebuilder/internal/crash"
	applog "gopagebuilder/internal/log"
	"gopagebuilder/internal/palette"
	"gopagebuilder/internal/ui"
	"gopagebuilder/internal/version"
)

func usage() {
	fmt.Println("Go Page Builder — canvas editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pagebuilder version|-v|--version           Show version")
	fmt.Println("  pagebuilder palette <file>                 Validate a palette catalog file and list its entries")
	fmt.Println("  pagebuilder ui [<paletteFile>]             Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Page Builder — canvas editor")
			fmt.Println(version.String())
			return
		case "palette":
			if len(args) < 3 {
				fmt.Println("palette requires <file>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("validate palette", slog.String("file", abs))
			cat, err := palette.Load(abs)
			if err != nil {
				l.Error("palette invalid", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Palette OK: %d entries\n", len(cat))
			for _, d := range cat {
				fmt.Printf("  %-20s %s (%gx%g)\n", d.Name, d.ComponentType, d.DefaultSize.W, d.DefaultSize.H)
			}
			return
		case "ui":
			var file string
			if len(args) >= 3 {
				file = args[2]
			}
			if err := ui.Run(file); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
