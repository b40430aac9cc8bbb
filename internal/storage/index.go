/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "dukescript/internal/log"
	"dukescript/internal/script"
	"dukescript/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-directory ephemeral/index data.
	IndexDirName  = ".dks"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump when breaking schema changes need migrations.
	schemaVersion = 1
)

// IndexPath returns the full path of the embedded index database file for a
// data directory.
func IndexPath(root string) string {
	return filepath.Join(root, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures the index database exists, opens it, enables WAL
// mode, and ensures the meta/version tables and index schema exist.
func InitOrOpenIndex(root string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(filepath.Join(root, IndexDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create %s dir: %w", IndexDirName, err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(IndexPath(root)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	l.Debug("index ready", slog.String("path", IndexPath(root)))
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		// One row per named script per source file.
		`CREATE TABLE IF NOT EXISTS scripts (
			script_id    INTEGER PRIMARY KEY,
			file         TEXT NOT NULL,
			name         TEXT NOT NULL,
			action_count INTEGER NOT NULL,
			UNIQUE(file, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scripts_name ON scripts(name);`,

		// Text content drawn by scripts: plain text, big text, message-box
		// lines. rowid feeds the FTS table.
		`CREATE TABLE IF NOT EXISTS text_rows (
			row_id    INTEGER PRIMARY KEY,
			script_id INTEGER NOT NULL,
			kind      TEXT NOT NULL,
			content   TEXT NOT NULL,
			FOREIGN KEY(script_id) REFERENCES scripts(script_id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_text_rows_script ON text_rows(script_id);`,

		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_text USING fts5(
			content,
			tokenize = 'unicode61'
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create index schema: %w", err)
		}
	}
	return nil
}

// RebuildIndex drops all indexed rows and re-populates the index from the
// given catalog. The index holds derived data only, so a full rebuild is
// always safe.
func RebuildIndex(ctx context.Context, cat *Catalog) error {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_rebuild").With(
		slog.String("root", cat.Root),
	)
	db, err := InitOrOpenIndex(cat.Root)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	for _, q := range []string{
		`DELETE FROM fts_text;`,
		`DELETE FROM text_rows;`,
		`DELETE FROM scripts;`,
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("clear index: %w", err)
		}
	}

	scriptCount := 0
	for file, bundle := range cat.Bundles {
		for name, s := range bundle {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO scripts (file, name, action_count) VALUES(?, ?, ?)`,
				file, name, len(s))
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert script %s/%s: %w", file, name, err)
			}
			scriptID, err := res.LastInsertId()
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("script id: %w", err)
			}
			for _, row := range collectTextRows(s) {
				res, err := tx.ExecContext(ctx,
					`INSERT INTO text_rows (script_id, kind, content) VALUES(?, ?, ?)`,
					scriptID, row.kind, row.content)
				if err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("insert text row: %w", err)
				}
				rowID, err := res.LastInsertId()
				if err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("text row id: %w", err)
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO fts_text (rowid, content) VALUES(?, ?)`,
					rowID, row.content); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("insert fts row: %w", err)
				}
			}
			scriptCount++
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	l.Info("index rebuilt", slog.Int("scripts", scriptCount))
	return nil
}

type textRow struct {
	kind    string
	content string
}

// collectTextRows extracts all indexable text from one script. The type
// switch is exhaustive over the action variants that carry text; pages
// recurse.
func collectTextRows(s script.Script) []textRow {
	var rows []textRow
	for _, action := range s {
		switch a := action.(type) {
		case script.DrawText:
			rows = append(rows, textRow{kind: "text", content: a.Text})
		case script.DrawBigText:
			rows = append(rows, textRow{kind: "big_text", content: a.Text})
		case script.ShowMessageBox:
			for _, line := range a.MessageLines {
				if line != "" {
					rows = append(rows, textRow{kind: "message", content: line})
				}
			}
		case script.ShowPages:
			for _, page := range a.Definition.Pages {
				rows = append(rows, collectTextRows(page)...)
			}
		}
	}
	return rows
}
