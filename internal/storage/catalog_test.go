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
	"os"
	"path/filepath"
	"testing"

	"dukescript/internal/script"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text.mni", "Intro\n//FADEIN\n//WAIT\n//END\n")
	writeFile(t, dir, "orders.txt", "Order_Info\n//XYTEXT 2 3 Call now!\n//END\n")
	writeFile(t, dir, "notes.md", "not a script file")

	cat, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}
	if len(cat.Bundles) != 2 {
		t.Fatalf("expected 2 bundles, got %+v", cat.Bundles)
	}
	if len(cat.Bundles["text.mni"]["Intro"]) != 2 {
		t.Fatalf("unexpected Intro script: %+v", cat.Bundles["text.mni"])
	}
	names := cat.ScriptNames()
	if len(names) != 2 || names[0] != "orders.txt/Order_Info" {
		t.Fatalf("unexpected script names: %+v", names)
	}
}

func TestLoadCatalogFailsAtomically(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mni", "Good\n//FADEIN\n//END\n")
	writeFile(t, dir, "bad.mni", "Bad\n//DELAY 0\n//END\n")

	cat, err := LoadCatalog(dir)
	if err == nil {
		t.Fatalf("expected error, got catalog %+v", cat)
	}
	if !errors.Is(err, script.ErrMalformedArgument) {
		t.Fatalf("expected wrapped ErrMalformedArgument, got %v", err)
	}
	if cat != nil {
		t.Fatalf("expected nil catalog on failure")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.mni")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
