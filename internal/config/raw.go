package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawAppearance struct {
	ButtonSize *int     `yaml:"button_size"`
	Opacity    *float64 `yaml:"opacity"`
	StayOnTop  *bool    `yaml:"stay_on_top"`
	InitialX   *int     `yaml:"initial_x"`
	InitialY   *int     `yaml:"initial_y"`
}

type RawConfig struct {
	Include          IncludeList       `yaml:"include"`
	Commands         map[string]string `yaml:"commands"`
	Appearance       *RawAppearance    `yaml:"appearance"`
	DragThreshold    *int              `yaml:"drag_threshold"`
	CommandSpacingMS *int              `yaml:"command_spacing_ms"`
	Voices           []string          `yaml:"voices"`
	Speeds           []string          `yaml:"speeds"`
	ToggleHotkey     *string           `yaml:"toggle_hotkey"`
	PanelHotkey      *string           `yaml:"panel_hotkey"`
	StatusListen     *string           `yaml:"status_listen"`
	LogLevel         *string           `yaml:"log_level"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Commands != nil {
		if out.Commands == nil {
			out.Commands = make(map[string]string, len(overlay.Commands))
		}
		for key, cmd := range overlay.Commands {
			out.Commands[key] = cmd
		}
	}
	if overlay.Appearance != nil {
		if out.Appearance == nil {
			out.Appearance = &RawAppearance{}
		}
		if overlay.Appearance.ButtonSize != nil {
			out.Appearance.ButtonSize = overlay.Appearance.ButtonSize
		}
		if overlay.Appearance.Opacity != nil {
			out.Appearance.Opacity = overlay.Appearance.Opacity
		}
		if overlay.Appearance.StayOnTop != nil {
			out.Appearance.StayOnTop = overlay.Appearance.StayOnTop
		}
		if overlay.Appearance.InitialX != nil {
			out.Appearance.InitialX = overlay.Appearance.InitialX
		}
		if overlay.Appearance.InitialY != nil {
			out.Appearance.InitialY = overlay.Appearance.InitialY
		}
	}
	if overlay.DragThreshold != nil {
		out.DragThreshold = overlay.DragThreshold
	}
	if overlay.CommandSpacingMS != nil {
		out.CommandSpacingMS = overlay.CommandSpacingMS
	}
	if overlay.Voices != nil {
		out.Voices = overlay.Voices
	}
	if overlay.Speeds != nil {
		out.Speeds = overlay.Speeds
	}
	if overlay.ToggleHotkey != nil {
		out.ToggleHotkey = overlay.ToggleHotkey
	}
	if overlay.PanelHotkey != nil {
		out.PanelHotkey = overlay.PanelHotkey
	}
	if overlay.StatusListen != nil {
		out.StatusListen = overlay.StatusListen
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}
