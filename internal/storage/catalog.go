/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	applog "dukescript/internal/log"
	"dukescript/internal/script"
)

// Script source files shipped by the game use .MNI; plain .txt is accepted
// for extracted/edited copies.
var scriptFileExtensions = []string{".mni", ".txt"}

// Catalog holds every script bundle of one game data directory, keyed by
// source file base name.
type Catalog struct {
	Root    string
	Bundles map[string]script.ScriptBundle
}

// LoadFile reads one script source file fully into memory and parses it.
func LoadFile(path string) (script.ScriptBundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script file: %w", err)
	}
	bundle, err := script.LoadScripts(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return bundle, nil
}

// LoadCatalog parses every script source file under root. A single
// malformed file fails the whole catalog; partially loaded catalogs are
// never returned.
func LoadCatalog(root string) (*Catalog, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "catalog_load").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("data directory is required")
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range scriptFileExtensions {
			if ext == want {
				files = append(files, e.Name())
				break
			}
		}
	}
	sort.Strings(files)

	cat := &Catalog{Root: root, Bundles: make(map[string]script.ScriptBundle, len(files))}
	for _, name := range files {
		bundle, err := LoadFile(filepath.Join(root, name))
		if err != nil {
			l.Error("script file failed to parse", slog.String("file", name), slog.Any("err", err))
			return nil, err
		}
		cat.Bundles[name] = bundle
		l.Debug("script file loaded", slog.String("file", name), slog.Int("scripts", len(bundle)))
	}
	l.Info("catalog loaded", slog.Int("files", len(cat.Bundles)))
	return cat, nil
}

// ScriptNames returns all script names in the catalog as file/name pairs,
// sorted for stable output.
func (c *Catalog) ScriptNames() []string {
	var names []string
	for file, bundle := range c.Bundles {
		for name := range bundle {
			names = append(names, file+"/"+name)
		}
	}
	sort.Strings(names)
	return names
}
