/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"dukescript/internal/script"
)

// BundlePDF writes a readable listing of the bundle to outPath: one section
// per script, one line per action, nested pages indented.
func BundlePDF(bundle script.ScriptBundle, title, outPath string) error {
	names := make([]string, 0, len(bundle))
	for name := range bundle {
		names = append(names, name)
	}
	sort.Strings(names)

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 36)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 20, title, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	for _, name := range names {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 16, name, "", 1, "L", false, 0, "")
		pdf.SetFont("Courier", "", 9)
		for _, line := range listingLines(bundle[name], 0) {
			pdf.CellFormat(0, 12, line, "", 1, "L", false, 0, "")
		}
		pdf.Ln(8)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func listingLines(s script.Script, depth int) []string {
	indent := strings.Repeat("  ", depth)
	var lines []string
	for _, action := range s {
		if sp, ok := action.(script.ShowPages); ok {
			lines = append(lines, indent+"pages:")
			for i, page := range sp.Definition.Pages {
				lines = append(lines, fmt.Sprintf("%s  page %d:", indent, i+1))
				lines = append(lines, listingLines(page, depth+2)...)
			}
			continue
		}
		lines = append(lines, indent+Describe(action))
	}
	return lines
}

// Describe returns a one-line human description of an action for listings.
func Describe(action script.Action) string {
	switch a := action.(type) {
	case script.FadeIn:
		return "fade in"
	case script.FadeOut:
		return "fade out"
	case script.Delay:
		return fmt.Sprintf("delay %d", a.Amount)
	case script.AnimateNewsReporter:
		return fmt.Sprintf("animate news reporter for %d", a.Duration)
	case script.StopNewsReporterAnimation:
		return "stop news reporter animation"
	case script.DisableMenuFunctionality:
		return "disable menu functionality"
	case script.ShowKeyBindings:
		return "show key bindings"
	case script.ShowSaveSlots:
		return fmt.Sprintf("show save slots, selected %d", a.Slot)
	case script.DrawSprite:
		return fmt.Sprintf("draw sprite actor=%d frame=%d at (%d,%d)", a.Actor, a.Frame, a.X, a.Y)
	case script.ShowFullScreenImage:
		return "show image " + a.Image
	case script.ShowMenuSelectionIndicator:
		return fmt.Sprintf("menu selection indicator at y=%d", a.YPos)
	case script.SetPalette:
		return "set palette " + a.Palette
	case script.WaitForUserInput:
		return "wait for input"
	case script.EnableTextOffset:
		return "enable text offset"
	case script.EnableTimeOutToDemo:
		return "enable timeout to demo"
	case script.DrawText:
		return fmt.Sprintf("text at (%d,%d): %q", a.X, a.Y, a.Text)
	case script.DrawBigText:
		return fmt.Sprintf("big text at (%d,%d) color=%d: %q", a.X, a.Y, a.ColorIndex, a.Text)
	case script.ShowMessageBox:
		return fmt.Sprintf("message box y=%d %dx%d, %d lines", a.Y, a.Width, a.Height, len(a.MessageLines))
	case script.ShowPages:
		return fmt.Sprintf("pages (%d)", len(a.Definition.Pages))
	case script.SetupCheckBoxes:
		return fmt.Sprintf("setup %d checkboxes at x=%d", len(a.Boxes), a.XPos)
	case script.ConfigurePersistentMenuSelection:
		return fmt.Sprintf("persistent menu selection slot %d", a.Slot)
	case script.ScheduleFadeInBeforeNextWaitState:
		return "schedule fade-in before next wait"
	default:
		return fmt.Sprintf("unknown action %T", action)
	}
}
