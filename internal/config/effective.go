package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

// BuildEffectiveConfig applies a merged raw config on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Commands != nil {
		if cfg.Commands == nil {
			cfg.Commands = make(map[string]string, len(raw.Commands))
		}
		for key, cmd := range raw.Commands {
			cfg.Commands[key] = cmd
		}
	}
	if raw.Appearance != nil {
		if raw.Appearance.ButtonSize != nil {
			cfg.Appearance.ButtonSize = *raw.Appearance.ButtonSize
		}
		if raw.Appearance.Opacity != nil {
			cfg.Appearance.Opacity = *raw.Appearance.Opacity
		}
		if raw.Appearance.StayOnTop != nil {
			cfg.Appearance.StayOnTop = *raw.Appearance.StayOnTop
		}
		if raw.Appearance.InitialX != nil {
			cfg.Appearance.InitialX = *raw.Appearance.InitialX
		}
		if raw.Appearance.InitialY != nil {
			cfg.Appearance.InitialY = *raw.Appearance.InitialY
		}
	}
	if raw.DragThreshold != nil {
		cfg.DragThreshold = *raw.DragThreshold
	}
	if raw.CommandSpacingMS != nil {
		cfg.CommandSpacingMS = *raw.CommandSpacingMS
	}
	if raw.Voices != nil {
		cfg.Voices = raw.Voices
	}
	if raw.Speeds != nil {
		cfg.Speeds = raw.Speeds
	}
	if raw.ToggleHotkey != nil {
		cfg.ToggleHotkey = *raw.ToggleHotkey
	}
	if raw.PanelHotkey != nil {
		cfg.PanelHotkey = *raw.PanelHotkey
	}
	if raw.StatusListen != nil {
		cfg.StatusListen = *raw.StatusListen
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg, nil
}
