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
	"strings"
)

// SearchResult is one text match inside an indexed script. Snippet uses
// [ ] markers around matched terms.
type SearchResult struct {
	File    string
	Script  string
	Kind    string
	Snippet string
}

// ScriptInfo describes one indexed script.
type ScriptInfo struct {
	File        string
	Name        string
	ActionCount int
}

// Search runs an FTS5 query (simple terms, quoted phrases, AND/OR/NOT) over
// the indexed text of a data directory.
func Search(ctx context.Context, root, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is required")
	}
	db, err := InitOrOpenIndex(root)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, query, limit)
}

func searchDB(ctx context.Context, db *sql.DB, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
		SELECT s.file, s.name, t.kind, snippet(fts_text, 0, '[', ']', '…', 10)
		FROM fts_text
		JOIN text_rows t ON fts_text.rowid = t.row_id
		JOIN scripts s ON t.script_id = s.script_id
		WHERE fts_text MATCH ?
		ORDER BY s.file, s.name
		LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.File, &r.Script, &r.Kind, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListScripts returns all indexed scripts sorted by file and name.
func ListScripts(ctx context.Context, root string) ([]ScriptInfo, error) {
	db, err := InitOrOpenIndex(root)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT file, name, action_count FROM scripts ORDER BY file, name`)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var infos []ScriptInfo
	for rows.Next() {
		var info ScriptInfo
		if err := rows.Scan(&info.File, &info.Name, &info.ActionCount); err != nil {
			return nil, fmt.Errorf("scan script row: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
