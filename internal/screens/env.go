package screens

import (
	"time"

	"github.com/jonathan/jobpilot/internal/generation"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"go.uber.org/zap"
)

// Env is what every controller needs.
type Env struct {
	Store     *store.Store
	Generator generation.Generator
	Logger    *zap.Logger
	Now       func() time.Time
	IDs       *types.IDGenerator
}

func (e Env) withDefaults() Env {
	if e.Logger == nil {
		e.Logger = zap.NewNop()
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.IDs == nil {
		e.IDs = &types.IDGenerator{}
	}
	return e
}

func (e Env) nextID() string {
	return e.IDs.Next(e.Now())
}

func (e Env) timestamp() string {
	return types.FormatTimestamp(e.Now())
}
