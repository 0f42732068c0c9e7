// Package theme holds the color palettes for the light and dark modes. A Theme
// is built once at startup and handed to whatever renders output.
package theme

import "fmt"

// Mode is the persisted theme choice.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// DefaultMode is used when no theme has been saved yet.
const DefaultMode = Dark

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode accepts "light" or "dark".
func ParseMode(raw string) (Mode, error) {
	m := Mode(raw)
	if !m.Valid() {
		return "", fmt.Errorf("unknown theme %q (want light or dark)", raw)
	}
	return m, nil
}

// Palette is the set of named colors used by every screen.
type Palette struct {
	Background         string `json:"background"`
	Surface            string `json:"surface"`
	Border             string `json:"border"`
	TextPrimary        string `json:"textPrimary"`
	TextSecondary      string `json:"textSecondary"`
	Primary            string `json:"primary"`
	TextOnPrimary      string `json:"textOnPrimary"`
	Success            string `json:"success"`
	InputBg            string `json:"inputBg"`
	InputText          string `json:"inputText"`
	ButtonDisabledBg   string `json:"buttonDisabledBg"`
	ButtonDisabledText string `json:"buttonDisabledText"`
	Notification       string `json:"notification"`
}

var palettes = map[Mode]Palette{
	Light: {
		Background:         "#f7fafc",
		Surface:            "#ffffff",
		Border:             "#e2e8f0",
		TextPrimary:        "#2d3748",
		TextSecondary:      "#718096",
		Primary:            "#1967d2",
		TextOnPrimary:      "#ffffff",
		Success:            "#34a853",
		InputBg:            "#ffffff",
		InputText:          "#2d3748",
		ButtonDisabledBg:   "#cbd5e0",
		ButtonDisabledText: "#718096",
		Notification:       "#ef4444",
	},
	Dark: {
		Background:         "#1a202c",
		Surface:            "#2d3748",
		Border:             "#4a5568",
		TextPrimary:        "#e2e8f0",
		TextSecondary:      "#a0aec0",
		Primary:            "#1967d2",
		TextOnPrimary:      "#ffffff",
		Success:            "#34a853",
		InputBg:            "#1a202c",
		InputText:          "#ffffff",
		ButtonDisabledBg:   "#4a5568",
		ButtonDisabledText: "#a0aec0",
		Notification:       "#ef4444",
	},
}

// PaletteFor returns the palette of a mode, falling back to the default mode.
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[DefaultMode]
}

// Theme is a mode with its resolved palette.
type Theme struct {
	Mode    Mode    `json:"mode"`
	Palette Palette `json:"palette"`
}

// New resolves the palette for m. Unknown modes resolve to the default.
func New(m Mode) Theme {
	if !m.Valid() {
		m = DefaultMode
	}
	return Theme{Mode: m, Palette: PaletteFor(m)}
}
