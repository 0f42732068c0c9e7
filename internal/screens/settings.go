package screens

import (
	"context"
	"strings"

	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/theme"
)

// Settings holds the theme choice and the user's name.
type Settings struct {
	env Env
}

// NewSettings creates the settings controller.
func NewSettings(env Env) *Settings {
	return &Settings{env: env.withDefaults()}
}

// Theme returns the saved theme, or the default when none is saved.
func (s *Settings) Theme(ctx context.Context) theme.Theme {
	mode := theme.Mode(store.Get(ctx, s.env.Store, store.KeyTheme, string(theme.DefaultMode)))
	if !mode.Valid() {
		mode = theme.DefaultMode
	}
	return theme.New(mode)
}

// SetTheme saves the theme choice.
func (s *Settings) SetTheme(ctx context.Context, raw string) (theme.Theme, error) {
	mode, err := theme.ParseMode(raw)
	if err != nil {
		return theme.Theme{}, invalid("theme", "Tema inválido: use light ou dark.")
	}
	if err := store.Set(ctx, s.env.Store, store.KeyTheme, string(mode)); err != nil {
		return theme.Theme{}, err
	}
	return theme.New(mode), nil
}

// ToggleTheme switches between light and dark.
func (s *Settings) ToggleTheme(ctx context.Context) (theme.Theme, error) {
	return s.SetTheme(ctx, string(s.Theme(ctx).Mode.Toggle()))
}

// UserName returns the saved name used in email drafts.
func (s *Settings) UserName(ctx context.Context) string {
	return store.Get(ctx, s.env.Store, store.KeyUserName, "")
}

// SetUserName saves the user's name.
func (s *Settings) SetUserName(ctx context.Context, name string) error {
	return store.Set(ctx, s.env.Store, store.KeyUserName, strings.TrimSpace(name))
}
