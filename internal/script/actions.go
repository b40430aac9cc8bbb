/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

// Action is one instruction within a Script. It is a closed union: every
// variant is a struct in this file carrying the unexported marker method,
// and the parser only ever constructs these variants. Consumers are expected
// to type-switch exhaustively.

type Action interface {
	isAction()
}

// Script is an ordered list of actions for one named cutscene/menu program.
// Order is playback order.
type Script []Action

// ScriptBundle maps script names to their parsed Scripts. A bundle is built
// once per load and never mutated afterwards.
type ScriptBundle map[string]Script

// PagesDefinition is an ordered list of alternative sub-scripts ("pages").
// It always contains at least one page; selection among pages is done by the
// player/interpreter, not here.
type PagesDefinition struct {
	Pages []Script
}

// CheckBoxDefinition positions one checkbox in an options menu and binds it
// to a game setting id.
type CheckBoxDefinition struct {
	YPos int
	ID   int
}

// FadeIn fades the screen in from black.
type FadeIn struct{}

// FadeOut fades the screen out to black.
type FadeOut struct{}

// Delay pauses playback for the given amount of ticks. Amount is always > 0.
type Delay struct {
	Amount int
}

// AnimateNewsReporter starts the news reporter babble animation for the
// given duration.
type AnimateNewsReporter struct {
	Duration int
}

// StopNewsReporterAnimation stops the babble animation early.
type StopNewsReporterAnimation struct{}

// DisableMenuFunctionality turns off menu navigation sounds/handling while
// the current script runs.
type DisableMenuFunctionality struct{}

// ShowKeyBindings displays the current keyboard bindings.
type ShowKeyBindings struct{}

// ShowSaveSlots shows the saved-game slot names, with the given slot
// highlighted. Slot is in [0, 8).
type ShowSaveSlots struct {
	Slot int
}

// DrawSprite draws one frame of an actor's sprite at the given tile
// position.
type DrawSprite struct {
	X     int
	Y     int
	Actor int
	Frame int
}

// ShowFullScreenImage displays a full-screen background image by file name.
type ShowFullScreenImage struct {
	Image string
}

// ShowMenuSelectionIndicator shows the menu selection marker at the given
// row.
type ShowMenuSelectionIndicator struct {
	YPos int
}

// SetPalette loads and activates the named palette file.
type SetPalette struct {
	Palette string
}

// WaitForUserInput pauses playback until a key is pressed.
type WaitForUserInput struct{}

// EnableTextOffset shifts subsequent text output, used for windows drawn
// off-center.
type EnableTextOffset struct{}

// EnableTimeOutToDemo makes the next wait state fall through into demo
// playback after a timeout.
type EnableTimeOutToDemo struct{}

// DrawText draws a line of text with the regular font.
type DrawText struct {
	X    int
	Y    int
	Text string
}

// DrawBigText draws a line of text with the large font, colorized with the
// given palette index.
type DrawBigText struct {
	X          int
	Y          int
	ColorIndex int
	Text       string
}

// ShowMessageBox displays a message box with the given vertical position and
// dimensions, containing the given lines of text. Blank lines are preserved.
type ShowMessageBox struct {
	Y            int
	Width        int
	Height       int
	MessageLines []string
}

// ShowPages wraps a multi-page definition as a single action.
type ShowPages struct {
	Definition PagesDefinition
}

// SetupCheckBoxes places a column of checkboxes at the given x position.
type SetupCheckBoxes struct {
	XPos  int
	Boxes []CheckBoxDefinition
}

// ConfigurePersistentMenuSelection keeps the menu selection in the given
// persistent slot across script invocations.
type ConfigurePersistentMenuSelection struct {
	Slot int
}

// ScheduleFadeInBeforeNextWaitState requests a fade-in right before the next
// wait state is entered.
type ScheduleFadeInBeforeNextWaitState struct{}

func (FadeIn) isAction()                            {}
func (FadeOut) isAction()                           {}
func (Delay) isAction()                             {}
func (AnimateNewsReporter) isAction()               {}
func (StopNewsReporterAnimation) isAction()         {}
func (DisableMenuFunctionality) isAction()          {}
func (ShowKeyBindings) isAction()                   {}
func (ShowSaveSlots) isAction()                     {}
func (DrawSprite) isAction()                        {}
func (ShowFullScreenImage) isAction()               {}
func (ShowMenuSelectionIndicator) isAction()        {}
func (SetPalette) isAction()                        {}
func (WaitForUserInput) isAction()                  {}
func (EnableTextOffset) isAction()                  {}
func (EnableTimeOutToDemo) isAction()               {}
func (DrawText) isAction()                          {}
func (DrawBigText) isAction()                       {}
func (ShowMessageBox) isAction()                    {}
func (ShowPages) isAction()                         {}
func (SetupCheckBoxes) isAction()                   {}
func (ConfigurePersistentMenuSelection) isAction()  {}
func (ScheduleFadeInBeforeNextWaitState) isAction() {}
