package screens

import (
	"context"
	"testing"

	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Theme(t *testing.T) {
	env := newTestEnv(t, &fakeGenerator{})
	s := NewSettings(env)
	ctx := context.Background()

	assert.Equal(t, theme.DefaultMode, s.Theme(ctx).Mode)

	toggled, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultMode.Toggle(), toggled.Mode)
	assert.Equal(t, toggled, s.Theme(ctx))
	assert.Equal(t, theme.PaletteFor(toggled.Mode), toggled.Palette)

	_, err = s.SetTheme(ctx, "sepia")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, toggled.Mode, s.Theme(ctx).Mode)

	require.NoError(t, store.Set(ctx, env.Store, store.KeyTheme, "neon"))
	assert.Equal(t, theme.DefaultMode, s.Theme(ctx).Mode, "unknown stored modes fall back")
}

func TestSettings_UserName(t *testing.T) {
	s := NewSettings(newTestEnv(t, &fakeGenerator{}))
	ctx := context.Background()

	assert.Empty(t, s.UserName(ctx))
	require.NoError(t, s.SetUserName(ctx, "  Maria Silva "))
	assert.Equal(t, "Maria Silva", s.UserName(ctx))
}
