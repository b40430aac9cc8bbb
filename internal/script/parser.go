/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script parses the plain-text scripting format driving the game's
// cutscenes, menus and UI flows into typed action sequences.
//
// A source blob concatenates named scripts:
//
//	Script_Name
//	//FADEIN
//	//DELAY 100
//	//END
//
// Only lines starting with the comment marker are instructions; everything
// else is ignored prose. The grammar is irregular: there is no uniform end
// marker, two constructs are multi-line, and text payloads may embed binary
// markup bytes. The parser reproduces these quirks exactly rather than
// tightening them.
package script

import (
	"fmt"
	"strings"
)

// Commands that only make sense inside a specific construct; hitting one of
// them anywhere else is a hard error rather than a silent skip.
var disallowedOutsideContext = map[string]struct{}{
	"APAGE":        {},
	"CENTERWINDOW": {},
	"CWTEXT":       {},
	"MENU":         {},
	"PAGESEND":     {},
	"PAGESSTART":   {},
	"SKLINE":       {},
}

// Markup bytes embedded in XYTEXT payloads. Bytes >= bigTextMarkerMin switch
// the rest of the payload to the large colorized font; spriteMarker turns it
// into a sprite reference. These thresholds come straight from the game's
// data files and are deliberately not validated any further.
const (
	bigTextMarkerMin = 0xF0
	spriteMarker     = 0xEF
)

// pressAnyKeyActor is the actor whose sprite is the "Press any key to
// continue" image; the PAK command is a shorthand for drawing it.
const pressAnyKeyActor = 146

// LoadScripts parses a full source blob into a bundle of named scripts.
// The call either returns a complete bundle or fails entirely; a single
// malformed script discards everything. When the same script name appears
// twice, the later definition wins.
func LoadScripts(source string) (ScriptBundle, error) {
	sc := newScanner(source)
	bundle := ScriptBundle{}
	for !sc.eof() {
		name := sc.readToken()
		if name == "" {
			break
		}
		parsed, err := parseScript(sc)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
		bundle[name] = parsed
	}
	return bundle, nil
}

// parseScriptLines feeds every command line to consume until endMarker is
// found. Running out of input first is fatal.
func parseScriptLines(
	sc *scanner,
	endMarker string,
	consume func(command string, line *lineReader) error,
) error {
	sc.skipWhitespace()
	for {
		raw, ok := sc.readLine()
		if !ok {
			break
		}
		line := strings.TrimSpace(raw)
		if !isCommand(line) {
			continue
		}
		line = stripCommandPrefix(line)
		if line == endMarker {
			return nil
		}
		reader := newLineReader(line)
		if err := consume(reader.readToken(), reader); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: missing end marker %q", ErrUnterminated, endMarker)
}

// parseScript assembles one script body up to its END marker.
func parseScript(sc *scanner) (Script, error) {
	result := Script{}
	err := parseScriptLines(sc, "END", func(command string, line *lineReader) error {
		switch command {
		case "PAGESSTART":
			sc.skipWhitespace()
			def, err := parsePagesDefinition(sc)
			if err != nil {
				return err
			}
			result = append(result, ShowPages{Definition: def})
		case "MENU":
			// MENU is the one command expanding into two actions.
			slot, _ := line.readInt()
			result = append(result,
				ConfigurePersistentMenuSelection{Slot: slot},
				ScheduleFadeInBeforeNextWaitState{})
		default:
			action, err := parseAction(command, sc, line)
			if err != nil {
				return err
			}
			if action != nil {
				result = append(result, action)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// parseAction handles commands that may need to keep reading raw lines from
// the scanner (currently just CENTERWINDOW) and defers everything else to
// parseOneLineAction.
func parseAction(command string, sc *scanner, line *lineReader) (Action, error) {
	if command == "CENTERWINDOW" {
		// Source order is y, height, width.
		y, _ := line.readInt()
		height, _ := line.readInt()
		width, _ := line.readInt()

		sc.skipWhitespace()
		lines, err := parseMessageBoxText(sc)
		if err != nil {
			return nil, err
		}
		return ShowMessageBox{Y: y, Width: width, Height: height, MessageLines: lines}, nil
	}
	return parseOneLineAction(command, line)
}

// parseMessageBoxText collects the text lines of a CENTERWINDOW block.
// The construct has no end marker: CWTEXT and SKLINE belong to it, and the
// first command that doesn't is left unconsumed by rewinding the scanner to
// just before its line, so the caller resumes regular parsing there.
func parseMessageBoxText(sc *scanner) ([]string, error) {
	var messageLines []string

	startOfLine := sc.mark()
	for {
		raw, ok := sc.readLine()
		if !ok {
			break
		}
		line := strings.TrimSpace(raw)
		if !isCommand(line) {
			continue
		}
		line = stripCommandPrefix(line)
		reader := newLineReader(line)
		switch reader.readToken() {
		case "CWTEXT":
			text := strings.TrimRight(reader.restAfterSeparator(), " \t")
			if text == "" {
				return nil, corruptf("CWTEXT with empty message line")
			}
			messageLines = append(messageLines, text)
		case "SKLINE":
			messageLines = append(messageLines, "")
		default:
			sc.restore(startOfLine)
			return messageLines, nil
		}
		startOfLine = sc.mark()
	}
	return messageLines, nil
}

// parsePagesDefinition parses the body of a PAGESSTART block up to
// PAGESEND. An implicit empty first page always exists; APAGE starts the
// next one.
func parsePagesDefinition(sc *scanner) (PagesDefinition, error) {
	pages := make([]Script, 1)
	err := parseScriptLines(sc, "PAGESEND", func(command string, line *lineReader) error {
		if command == "APAGE" {
			pages = append(pages, Script{})
			return nil
		}
		action, err := parseOneLineAction(command, line)
		if err != nil {
			return err
		}
		if action != nil {
			pages[len(pages)-1] = append(pages[len(pages)-1], action)
		}
		return nil
	})
	if err != nil {
		return PagesDefinition{}, err
	}
	return PagesDefinition{Pages: pages}, nil
}

// parseOneLineAction turns a command confined to a single line into its
// action. Unrecognized commands yield (nil, nil): script files contain
// directives this engine never implemented, and skipping them is the
// expected behavior.
func parseOneLineAction(command string, line *lineReader) (Action, error) {
	switch command {
	case "FADEIN":
		return FadeIn{}, nil

	case "FADEOUT":
		return FadeOut{}, nil

	case "DELAY":
		amount, _ := line.readInt()
		if amount <= 0 {
			return nil, malformedf("DELAY amount must be positive, got %d", amount)
		}
		return Delay{Amount: amount}, nil

	case "BABBLEON":
		duration, _ := line.readInt()
		if duration <= 0 {
			return nil, malformedf("BABBLEON duration must be positive, got %d", duration)
		}
		return AnimateNewsReporter{Duration: duration}, nil

	case "BABBLEOFF":
		return StopNewsReporterAnimation{}, nil

	case "NOSOUNDS":
		return DisableMenuFunctionality{}, nil

	case "KEYS":
		return ShowKeyBindings{}, nil

	case "GETNAMES":
		slot, _ := line.readInt()
		if slot < 0 || slot >= 8 {
			return nil, malformedf("GETNAMES slot %d out of range [0, 8)", slot)
		}
		return ShowSaveSlots{Slot: slot}, nil

	case "PAK":
		// [P]ress [A]ny [K]ey.
		return DrawSprite{X: 0, Y: 0, Actor: pressAnyKeyActor, Frame: 0}, nil

	case "LOADRAW":
		image := line.readToken()
		if image == "" {
			return nil, malformedf("LOADRAW requires an image name")
		}
		return ShowFullScreenImage{Image: image}, nil

	case "Z":
		yPos, _ := line.readInt()
		return ShowMenuSelectionIndicator{YPos: yPos}, nil

	case "XYTEXT":
		return parseXYText(line)

	case "GETPAL":
		palette := line.readToken()
		if palette == "" {
			return nil, malformedf("GETPAL requires a palette name")
		}
		return SetPalette{Palette: palette}, nil

	case "WAIT":
		return WaitForUserInput{}, nil

	case "SHIFTWIN":
		return EnableTextOffset{}, nil

	case "EXITTODEMO":
		return EnableTimeOutToDemo{}, nil

	case "TOGGS":
		xPos, _ := line.readInt()
		count, _ := line.readInt()
		var boxes []CheckBoxDefinition
		for i := 0; i < count; i++ {
			var box CheckBoxDefinition
			box.YPos, _ = line.readInt()
			box.ID, _ = line.readInt()
			boxes = append(boxes, box)
		}
		return SetupCheckBoxes{XPos: xPos, Boxes: boxes}, nil

	default:
		if _, ok := disallowedOutsideContext[command]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDisallowedCommand, command)
		}
		return nil, nil
	}
}

// parseXYText decodes the three faces of the XYTEXT command. The payload
// may contain markup bytes switching its meaning: a byte >= 0xF0 selects
// big colorized text (its low nibble is the palette color index, and any
// preceding characters are assumed to be spaces and folded into the x
// coordinate), a leading 0xEF byte selects a sprite reference (3 digits of
// actor id, 2 digits of frame index); otherwise the payload is plain text.
func parseXYText(line *lineReader) (Action, error) {
	x, okX := line.readInt()
	y, okY := line.readInt()
	if !okX || !okY {
		return nil, corruptf("XYTEXT without coordinates")
	}

	payload := line.restAfterSeparator()
	if payload == "" {
		return nil, corruptf("XYTEXT with empty payload")
	}

	for i := 0; i < len(payload); i++ {
		if payload[i] >= bigTextMarkerMin {
			return DrawBigText{
				X:          x + i,
				Y:          y,
				ColorIndex: int(payload[i]) - bigTextMarkerMin,
				Text:       payload[i+1:],
			}, nil
		}
	}

	if payload[0] == spriteMarker {
		if len(payload) < 6 {
			return nil, corruptf("XYTEXT sprite reference needs 5 digits, got %q", payload[1:])
		}
		actor, ok := parseDigits(payload[1:4])
		if !ok {
			return nil, corruptf("XYTEXT sprite reference with non-numeric actor id %q", payload[1:4])
		}
		frame, ok := parseDigits(payload[4:6])
		if !ok {
			return nil, corruptf("XYTEXT sprite reference with non-numeric frame %q", payload[4:6])
		}
		return DrawSprite{X: x + 2, Y: y + 1, Actor: actor, Frame: frame}, nil
	}

	return DrawText{X: x, Y: y, Text: payload}, nil
}

func parseDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}
