/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements the script catalog and its embedded index.
// A catalog reads every script source file from a game data directory into
// memory and parses it into a bundle; the parser itself never touches disk.
// The per-directory SQLite index at <dir>/.dks/index.sqlite stores script
// metadata and an FTS table over text drawn by the scripts, used for search.
// The index is derived data and is rebuildable/disposable by design.
package storage
