/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"errors"
	"fmt"
)

// Every parse failure wraps one of these sentinels, so callers can classify
// with errors.Is. All of them abort the whole bundle load; there is no
// partial recovery.
var (
	// ErrMalformedArgument signals a numeric or string argument violating
	// its constraint (e.g. DELAY <= 0, GETNAMES slot out of range, empty
	// required name).
	ErrMalformedArgument = errors.New("malformed argument")

	// ErrCorruptPayload signals a required inline text payload that is
	// empty or too short for its sub-grammar.
	ErrCorruptPayload = errors.New("corrupt payload")

	// ErrDisallowedCommand signals a command appearing outside the only
	// context in which it is valid.
	ErrDisallowedCommand = errors.New("command not allowed in this context")

	// ErrUnterminated signals input running out before the expected end
	// marker.
	ErrUnterminated = errors.New("unterminated construct")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedArgument, fmt.Sprintf(format, args...))
}

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptPayload, fmt.Sprintf(format, args...))
}
