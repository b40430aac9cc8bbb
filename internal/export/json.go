/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders parsed script bundles into external formats: a
// schema-validated JSON document and a human-readable PDF listing.
package export

import (
	_ "embed"
	"encoding/json"
	"fmt"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"dukescript/internal/script"
	"dukescript/internal/version"
)

//go:embed bundle.schema.json
var bundleSchema []byte

// BundleJSON marshals a bundle into an indented JSON document. Each action
// is an object with a "type" discriminator plus its variant fields.
func BundleJSON(bundle script.ScriptBundle) ([]byte, error) {
	scripts := make(map[string][]map[string]any, len(bundle))
	for name, s := range bundle {
		encoded, err := encodeScript(s)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", name, err)
		}
		scripts[name] = encoded
	}
	doc := map[string]any{
		"version": version.String(),
		"scripts": scripts,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	return append(data, '\n'), nil
}

// ValidateBundleJSON checks a document against the embedded bundle schema.
func ValidateBundleJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(bundleSchema),
		gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if !result.Valid() {
		msgs := ""
		for _, e := range result.Errors() {
			msgs += "; " + e.String()
		}
		return fmt.Errorf("document does not conform to bundle schema%s", msgs)
	}
	return nil
}

func encodeScript(s script.Script) ([]map[string]any, error) {
	encoded := make([]map[string]any, 0, len(s))
	for _, action := range s {
		obj, err := encodeAction(action)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, obj)
	}
	return encoded, nil
}

func encodeAction(action script.Action) (map[string]any, error) {
	switch a := action.(type) {
	case script.FadeIn:
		return map[string]any{"type": "fade_in"}, nil
	case script.FadeOut:
		return map[string]any{"type": "fade_out"}, nil
	case script.Delay:
		return map[string]any{"type": "delay", "amount": a.Amount}, nil
	case script.AnimateNewsReporter:
		return map[string]any{"type": "animate_news_reporter", "duration": a.Duration}, nil
	case script.StopNewsReporterAnimation:
		return map[string]any{"type": "stop_news_reporter_animation"}, nil
	case script.DisableMenuFunctionality:
		return map[string]any{"type": "disable_menu_functionality"}, nil
	case script.ShowKeyBindings:
		return map[string]any{"type": "show_key_bindings"}, nil
	case script.ShowSaveSlots:
		return map[string]any{"type": "show_save_slots", "slot": a.Slot}, nil
	case script.DrawSprite:
		return map[string]any{"type": "draw_sprite", "x": a.X, "y": a.Y, "actor": a.Actor, "frame": a.Frame}, nil
	case script.ShowFullScreenImage:
		return map[string]any{"type": "show_full_screen_image", "image": a.Image}, nil
	case script.ShowMenuSelectionIndicator:
		return map[string]any{"type": "show_menu_selection_indicator", "y": a.YPos}, nil
	case script.SetPalette:
		return map[string]any{"type": "set_palette", "palette": a.Palette}, nil
	case script.WaitForUserInput:
		return map[string]any{"type": "wait_for_user_input"}, nil
	case script.EnableTextOffset:
		return map[string]any{"type": "enable_text_offset"}, nil
	case script.EnableTimeOutToDemo:
		return map[string]any{"type": "enable_time_out_to_demo"}, nil
	case script.DrawText:
		return map[string]any{"type": "draw_text", "x": a.X, "y": a.Y, "text": a.Text}, nil
	case script.DrawBigText:
		return map[string]any{"type": "draw_big_text", "x": a.X, "y": a.Y, "color": a.ColorIndex, "text": a.Text}, nil
	case script.ShowMessageBox:
		lines := a.MessageLines
		if lines == nil {
			lines = []string{}
		}
		return map[string]any{"type": "show_message_box", "y": a.Y, "width": a.Width, "height": a.Height, "lines": lines}, nil
	case script.ShowPages:
		pages := make([][]map[string]any, 0, len(a.Definition.Pages))
		for _, page := range a.Definition.Pages {
			encoded, err := encodeScript(page)
			if err != nil {
				return nil, err
			}
			pages = append(pages, encoded)
		}
		return map[string]any{"type": "show_pages", "pages": pages}, nil
	case script.SetupCheckBoxes:
		boxes := make([]map[string]any, 0, len(a.Boxes))
		for _, b := range a.Boxes {
			boxes = append(boxes, map[string]any{"y": b.YPos, "id": b.ID})
		}
		return map[string]any{"type": "setup_check_boxes", "x": a.XPos, "boxes": boxes}, nil
	case script.ConfigurePersistentMenuSelection:
		return map[string]any{"type": "configure_persistent_menu_selection", "slot": a.Slot}, nil
	case script.ScheduleFadeInBeforeNextWaitState:
		return map[string]any{"type": "schedule_fade_in_before_next_wait_state"}, nil
	default:
		return nil, fmt.Errorf("unhandled action type %T", action)
	}
}
