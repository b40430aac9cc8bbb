/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command dukescript inspects the plain-text script files driving a classic
// game's cutscenes and menus: parse them, export listings, and search their
// text through an embedded index.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"dukescript/internal/config"
	"dukescript/internal/crash"
	"dukescript/internal/export"
	applog "dukescript/internal/log"
	"dukescript/internal/storage"
	"dukescript/internal/version"
)

const usage = `usage: dukescript <command> [args]

commands:
  version                      print the tool version
  parse <file>                 parse one script file and list its scripts
  export-json <file> [out]     export a parsed file as JSON (stdout if no out)
  export-pdf <file> <out>      export a parsed file as a PDF listing
  index [dir]                  parse all script files in dir and rebuild the index
  search <dir> <query>         full-text search over indexed script text
`

func main() {
	defer crash.Recover()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	applog.Init(applog.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var cmdErr error
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "parse":
		cmdErr = runParse(args[1:])
	case "export-json":
		cmdErr = runExportJSON(args[1:])
	case "export-pdf":
		cmdErr = runExportPDF(args[1:])
	case "index":
		cmdErr = runIndex(args[1:], cfg)
	case "search":
		cmdErr = runSearch(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", args[0], usage)
		os.Exit(2)
	}
	if cmdErr != nil {
		fmt.Fprintln(os.Stderr, "error:", cmdErr)
		os.Exit(1)
	}
}

func runParse(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("parse needs exactly one file argument")
	}
	bundle, err := storage.LoadFile(args[0])
	if err != nil {
		return err
	}
	names := make([]string, 0, len(bundle))
	for name := range bundle {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-32s %4d actions\n", name, len(bundle[name]))
	}
	return nil
}

func runExportJSON(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("export-json needs a file and an optional output path")
	}
	bundle, err := storage.LoadFile(args[0])
	if err != nil {
		return err
	}
	data, err := export.BundleJSON(bundle)
	if err != nil {
		return err
	}
	if err := export.ValidateBundleJSON(data); err != nil {
		return err
	}
	if len(args) == 2 {
		return os.WriteFile(args[1], data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runExportPDF(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("export-pdf needs a file and an output path")
	}
	bundle, err := storage.LoadFile(args[0])
	if err != nil {
		return err
	}
	return export.BundlePDF(bundle, args[0], args[1])
}

func runIndex(args []string, cfg config.AppConfig) error {
	dir := cfg.Catalog.DataDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no data directory given (argument or %s)", config.EnvDataDir)
	}
	cat, err := storage.LoadCatalog(dir)
	if err != nil {
		return err
	}
	if err := storage.RebuildIndex(context.Background(), cat); err != nil {
		return err
	}
	infos, err := storage.ListScripts(context.Background(), dir)
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Printf("%-16s %-32s %4d actions\n", info.File, info.Name, info.ActionCount)
	}
	return nil
}

func runSearch(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("search needs a data directory and a query")
	}
	results, err := storage.Search(context.Background(), args[0], args[1], 50)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s/%s [%s]: %s\n", r.File, r.Script, r.Kind, r.Snippet)
	}
	return nil
}
