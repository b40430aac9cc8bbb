/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// scanner is a byte cursor over the full source blob. Its position can be
// saved and restored, which the message-box parser uses for its one line of
// lookahead; nothing else ever rewinds.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

// mark returns the current position for a later restore.
func (s *scanner) mark() int { return s.pos }

func (s *scanner) restore(p int) { s.pos = p }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// skipWhitespace advances past whitespace and newlines.
func (s *scanner) skipWhitespace() {
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// readLine consumes up to and including the next newline and returns the
// line without it. Returns false at end of input.
func (s *scanner) readLine() (string, bool) {
	if s.eof() {
		return "", false
	}
	start := s.pos
	idx := strings.IndexByte(s.src[start:], '\n')
	if idx < 0 {
		s.pos = len(s.src)
		return s.src[start:], true
	}
	s.pos = start + idx + 1
	return s.src[start : start+idx], true
}

// readToken consumes one whitespace-delimited token, used by the bundle
// loader to read script names.
func (s *scanner) readToken() string {
	s.skipWhitespace()
	start := s.pos
	for s.pos < len(s.src) && !isSpace(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

// commandMarker prefixes every line that is an instruction; all other lines
// are ignored prose.
const commandMarker = "//"

func isCommand(line string) bool {
	return strings.HasPrefix(line, commandMarker)
}

// stripCommandPrefix removes every leading repetition of the marker
// character. Source files sometimes repeat it for emphasis.
func stripCommandPrefix(line string) string {
	return strings.TrimLeft(line, "/")
}

// lineReader walks the remainder of one command line, reading decimal
// numbers and string tokens the way the action parser needs them.
type lineReader struct {
	s   string
	pos int
}

func newLineReader(s string) *lineReader {
	return &lineReader{s: s}
}

// readInt skips whitespace and parses an optionally signed decimal number.
// A missing or non-numeric field yields (0, false); the caller decides
// whether that is an error.
func (r *lineReader) readInt() (int, bool) {
	for r.pos < len(r.s) && isSpace(r.s[r.pos]) {
		r.pos++
	}
	start := r.pos
	if r.pos < len(r.s) && (r.s[r.pos] == '-' || r.s[r.pos] == '+') {
		r.pos++
	}
	digitsStart := r.pos
	for r.pos < len(r.s) && r.s[r.pos] >= '0' && r.s[r.pos] <= '9' {
		r.pos++
	}
	if r.pos == digitsStart {
		r.pos = start
		return 0, false
	}
	n := 0
	for _, c := range []byte(r.s[digitsStart:r.pos]) {
		n = n*10 + int(c-'0')
	}
	if r.s[start] == '-' {
		n = -n
	}
	return n, true
}

// readToken skips whitespace and returns the next whitespace-delimited
// token, or "" if the line is exhausted.
func (r *lineReader) readToken() string {
	for r.pos < len(r.s) && isSpace(r.s[r.pos]) {
		r.pos++
	}
	start := r.pos
	for r.pos < len(r.s) && !isSpace(r.s[r.pos]) {
		r.pos++
	}
	return r.s[start:r.pos]
}

// restAfterSeparator skips exactly one separator byte and returns the rest
// of the line up to a carriage return, if any. Only a single byte is
// consumed before the payload so that leading spaces inside the payload
// survive; the big-text shorthand depends on them.
func (r *lineReader) restAfterSeparator() string {
	if r.pos < len(r.s) {
		r.pos++
	}
	rest := r.s[r.pos:]
	r.pos = len(r.s)
	if idx := strings.IndexByte(rest, '\r'); idx >= 0 {
		rest = rest[:idx]
	}
	return rest
}
