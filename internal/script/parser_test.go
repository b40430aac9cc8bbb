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
	"reflect"
	"testing"
)

func mustLoadSingle(t *testing.T, source, name string) Script {
	t.Helper()
	bundle, err := LoadScripts(source)
	if err != nil {
		t.Fatalf("LoadScripts error: %v", err)
	}
	s, ok := bundle[name]
	if !ok {
		t.Fatalf("bundle is missing script %q: %+v", name, bundle)
	}
	return s
}

func TestLoadScriptsBasic(t *testing.T) {
	bundle, err := LoadScripts("S1\n//FADEIN\n//DELAY 5\n//END\n")
	if err != nil {
		t.Fatalf("LoadScripts error: %v", err)
	}
	if len(bundle) != 1 {
		t.Fatalf("expected 1 script, got %d", len(bundle))
	}
	want := Script{FadeIn{}, Delay{Amount: 5}}
	if !reflect.DeepEqual(bundle["S1"], want) {
		t.Fatalf("unexpected actions: %+v", bundle["S1"])
	}
}

func TestProseLinesAndUnknownCommandsAreSkipped(t *testing.T) {
	source := `Intro
Just some prose text describing the scene.
//FADEIN
//SETKEYS 15 28
//HELPTEXT 1 3 Some hint text
more prose
//WAIT
//END
`
	s := mustLoadSingle(t, source, "Intro")
	want := Script{FadeIn{}, WaitForUserInput{}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestCommandMarkerStrippingIsGreedy(t *testing.T) {
	s := mustLoadSingle(t, "S\n////FADEOUT\n///END\n", "S")
	if !reflect.DeepEqual(s, Script{FadeOut{}}) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestSimpleOneLineCommands(t *testing.T) {
	source := "S\n" +
		"//BABBLEON 100\n" +
		"//BABBLEOFF\n" +
		"//NOSOUNDS\n" +
		"//KEYS\n" +
		"//PAK\n" +
		"//LOADRAW BONUSSCN.MNI\n" +
		"//Z 11\n" +
		"//GETPAL DUKE3.PAL\n" +
		"//WAIT\n" +
		"//SHIFTWIN\n" +
		"//EXITTODEMO\n" +
		"//END\n"
	s := mustLoadSingle(t, source, "S")
	want := Script{
		AnimateNewsReporter{Duration: 100},
		StopNewsReporterAnimation{},
		DisableMenuFunctionality{},
		ShowKeyBindings{},
		DrawSprite{X: 0, Y: 0, Actor: 146, Frame: 0},
		ShowFullScreenImage{Image: "BONUSSCN.MNI"},
		ShowMenuSelectionIndicator{YPos: 11},
		SetPalette{Palette: "DUKE3.PAL"},
		WaitForUserInput{},
		EnableTextOffset{},
		EnableTimeOutToDemo{},
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestDelayValidation(t *testing.T) {
	cases := []struct {
		arg string
		ok  bool
	}{
		{"5", true},
		{"0", false},
		{"-3", false},
		{"", false},
	}
	for _, c := range cases {
		_, err := LoadScripts("S\n//DELAY " + c.arg + "\n//END\n")
		if c.ok && err != nil {
			t.Fatalf("DELAY %q: unexpected error %v", c.arg, err)
		}
		if !c.ok {
			if !errors.Is(err, ErrMalformedArgument) {
				t.Fatalf("DELAY %q: expected ErrMalformedArgument, got %v", c.arg, err)
			}
		}
	}
}

func TestGetNamesSlotRange(t *testing.T) {
	for _, slot := range []string{"0", "7"} {
		s := mustLoadSingle(t, "S\n//GETNAMES "+slot+"\n//END\n", "S")
		if len(s) != 1 {
			t.Fatalf("GETNAMES %s: expected 1 action, got %+v", slot, s)
		}
	}
	for _, slot := range []string{"8", "-1"} {
		_, err := LoadScripts("S\n//GETNAMES " + slot + "\n//END\n")
		if !errors.Is(err, ErrMalformedArgument) {
			t.Fatalf("GETNAMES %s: expected ErrMalformedArgument, got %v", slot, err)
		}
	}
}

func TestEmptyNameArgumentsFail(t *testing.T) {
	for _, cmd := range []string{"LOADRAW", "GETPAL"} {
		_, err := LoadScripts("S\n//" + cmd + "\n//END\n")
		if !errors.Is(err, ErrMalformedArgument) {
			t.Fatalf("%s: expected ErrMalformedArgument, got %v", cmd, err)
		}
	}
}

func TestXYTextPlain(t *testing.T) {
	s := mustLoadSingle(t, "S\n//XYTEXT 4 7 Hello there\n//END\n", "S")
	want := Script{DrawText{X: 4, Y: 7, Text: "Hello there"}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestXYTextBigColorized(t *testing.T) {
	// Three leading spaces before the marker shift x by 3; the marker's low
	// nibble is the palette color index.
	s := mustLoadSingle(t, "S\n//XYTEXT 10 5    \xf7BONUS!\n//END\n", "S")
	want := Script{DrawBigText{X: 13, Y: 5, ColorIndex: 7, Text: "BONUS!"}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestXYTextSpriteReference(t *testing.T) {
	s := mustLoadSingle(t, "S\n//XYTEXT 8 6 \xef12304\n//END\n", "S")
	want := Script{DrawSprite{X: 10, Y: 7, Actor: 123, Frame: 4}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestXYTextCorruptPayloads(t *testing.T) {
	sources := []string{
		"S\n//XYTEXT 8 6\n//END\n",          // no payload at all
		"S\n//XYTEXT 8 6 \xef123\n//END\n",  // sprite reference too short
		"S\n//XYTEXT 8 6 \xef12a45\n//END\n", // non-numeric digits
		"S\n//XYTEXT\n//END\n",              // missing coordinates
	}
	for _, src := range sources {
		_, err := LoadScripts(src)
		if !errors.Is(err, ErrCorruptPayload) {
			t.Fatalf("source %q: expected ErrCorruptPayload, got %v", src, err)
		}
	}
}

func TestMessageBoxStopsAtForeignCommand(t *testing.T) {
	source := `Hints
//CENTERWINDOW 2 6 20
//CWTEXT Hello
//SKLINE
//CWTEXT Bye
//FADEIN
//END
`
	s := mustLoadSingle(t, source, "Hints")
	if len(s) != 2 {
		t.Fatalf("expected 2 actions, got %+v", s)
	}
	box, ok := s[0].(ShowMessageBox)
	if !ok {
		t.Fatalf("expected ShowMessageBox first, got %+v", s[0])
	}
	// Source argument order is y, height, width.
	if box.Y != 2 || box.Height != 6 || box.Width != 20 {
		t.Fatalf("unexpected box geometry: %+v", box)
	}
	wantLines := []string{"Hello", "", "Bye"}
	if !reflect.DeepEqual(box.MessageLines, wantLines) {
		t.Fatalf("unexpected message lines: %+v", box.MessageLines)
	}
	if _, ok := s[1].(FadeIn); !ok {
		t.Fatalf("expected FadeIn after the message box, got %+v", s[1])
	}
}

func TestMessageBoxEmptyTextLineFails(t *testing.T) {
	_, err := LoadScripts("S\n//CENTERWINDOW 2 6 20\n//CWTEXT\n//END\n")
	if !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}
}

func TestMenuExpandsToTwoActions(t *testing.T) {
	s := mustLoadSingle(t, "Main\n//MENU 3\n//END\n", "Main")
	want := Script{
		ConfigurePersistentMenuSelection{Slot: 3},
		ScheduleFadeInBeforeNextWaitState{},
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestPagesDefinition(t *testing.T) {
	source := `Story
//PAGESSTART
//XYTEXT 1 1 first page
//APAGE
//XYTEXT 1 1 second page
//WAIT
//PAGESEND
//END
`
	s := mustLoadSingle(t, source, "Story")
	if len(s) != 1 {
		t.Fatalf("expected 1 action, got %+v", s)
	}
	sp, ok := s[0].(ShowPages)
	if !ok {
		t.Fatalf("expected ShowPages, got %+v", s[0])
	}
	pages := sp.Definition.Pages
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if len(pages[0]) != 1 || len(pages[1]) != 2 {
		t.Fatalf("unexpected page contents: %+v", pages)
	}
}

func TestPagesDefinitionHasImplicitFirstPage(t *testing.T) {
	s := mustLoadSingle(t, "S\n//PAGESSTART\n//PAGESEND\n//END\n", "S")
	sp, ok := s[0].(ShowPages)
	if !ok {
		t.Fatalf("expected ShowPages, got %+v", s[0])
	}
	if len(sp.Definition.Pages) != 1 {
		t.Fatalf("expected 1 implicit page, got %d", len(sp.Definition.Pages))
	}
}

func TestToggsReadsInlinePairs(t *testing.T) {
	s := mustLoadSingle(t, "Opts\n//TOGGS 5 3 7 21 9 22 11 23\n//END\n", "Opts")
	want := Script{SetupCheckBoxes{
		XPos: 5,
		Boxes: []CheckBoxDefinition{
			{YPos: 7, ID: 21},
			{YPos: 9, ID: 22},
			{YPos: 11, ID: 23},
		},
	}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}

func TestDisallowedCommandsOutsideContext(t *testing.T) {
	for _, cmd := range []string{"APAGE", "CWTEXT x", "PAGESEND", "SKLINE"} {
		_, err := LoadScripts("S\n//" + cmd + "\n//END\n")
		if !errors.Is(err, ErrDisallowedCommand) {
			t.Fatalf("%s: expected ErrDisallowedCommand, got %v", cmd, err)
		}
	}
	// MENU and CENTERWINDOW are fine at script level but not inside pages.
	_, err := LoadScripts("S\n//PAGESSTART\n//MENU 1\n//PAGESEND\n//END\n")
	if !errors.Is(err, ErrDisallowedCommand) {
		t.Fatalf("MENU in pages: expected ErrDisallowedCommand, got %v", err)
	}
	_, err = LoadScripts("S\n//PAGESSTART\n//CENTERWINDOW 2 6 20\n//PAGESEND\n//END\n")
	if !errors.Is(err, ErrDisallowedCommand) {
		t.Fatalf("CENTERWINDOW in pages: expected ErrDisallowedCommand, got %v", err)
	}
}

func TestMissingEndMarkerFails(t *testing.T) {
	_, err := LoadScripts("S\n//FADEIN\n//DELAY 5\n")
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
	_, err = LoadScripts("S\n//PAGESSTART\n//WAIT\n//END\n")
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("unterminated pages: expected ErrUnterminated, got %v", err)
	}
}

func TestFailureDiscardsWholeBundle(t *testing.T) {
	bundle, err := LoadScripts("Good\n//FADEIN\n//END\nBad\n//DELAY 0\n//END\n")
	if err == nil {
		t.Fatalf("expected error, got bundle %+v", bundle)
	}
	if bundle != nil {
		t.Fatalf("expected nil bundle on failure, got %+v", bundle)
	}
}

func TestDuplicateScriptNameLaterWins(t *testing.T) {
	bundle, err := LoadScripts("S\n//FADEIN\n//END\nS\n//FADEOUT\n//END\n")
	if err != nil {
		t.Fatalf("LoadScripts error: %v", err)
	}
	if len(bundle) != 1 {
		t.Fatalf("expected 1 script, got %d", len(bundle))
	}
	if !reflect.DeepEqual(bundle["S"], Script{FadeOut{}}) {
		t.Fatalf("expected later definition to win, got %+v", bundle["S"])
	}
}

func TestMultipleScriptsInOneBlob(t *testing.T) {
	source := "\n\nFirst\n//WAIT\n//END\n\nSecond\n//FADEIN\n//FADEOUT\n//END\n"
	bundle, err := LoadScripts(source)
	if err != nil {
		t.Fatalf("LoadScripts error: %v", err)
	}
	if len(bundle) != 2 {
		t.Fatalf("expected 2 scripts, got %+v", bundle)
	}
	if len(bundle["First"]) != 1 || len(bundle["Second"]) != 2 {
		t.Fatalf("unexpected scripts: %+v", bundle)
	}
}

func TestCarriageReturnsAreTolerated(t *testing.T) {
	source := "S\r\n//XYTEXT 4 7 Hello\r\n//WAIT\r\n//END\r\n"
	s := mustLoadSingle(t, source, "S")
	want := Script{DrawText{X: 4, Y: 7, Text: "Hello"}, WaitForUserInput{}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("unexpected actions: %+v", s)
	}
}
