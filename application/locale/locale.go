package locale

import (
	"context"
	"fmt"

	"github.com/rescueops/admin-console/constant"
	prefsrepo "github.com/rescueops/admin-console/repository/prefs"
	"github.com/rescueops/admin-console/utils/errors"
	"github.com/rescueops/admin-console/utils/logger"
	"go.uber.org/zap"
)

// Manager is the explicit locale context handed to the screens: loaded
// once at startup from the injected preference store, saved on every
// change. There is no ambient global.
type Manager struct {
	prefs    prefsrepo.Repository
	fallback string
}

func NewManager(prefs prefsrepo.Repository, fallback string) *Manager {
	if !constant.ValidLocale(fallback) {
		fallback = constant.DefaultLocale
	}
	return &Manager{prefs: prefs, fallback: fallback}
}

// Load reads the persisted display locale; any failure or unknown value
// falls back to the configured default.
func (m *Manager) Load(ctx context.Context) string {
	tag, err := m.prefs.Get(ctx, constant.LocalePrefKey)
	if err != nil {
		logger.Warn("[locale] err prefs.Get, using fallback", zap.String("error", err.Error()))
		return m.fallback
	}
	if !constant.ValidLocale(tag) {
		return m.fallback
	}
	return tag
}

// Set persists a new display locale.
func (m *Manager) Set(ctx context.Context, tag string) error {
	if !constant.ValidLocale(tag) {
		return errors.SetCustomError(constant.ErrValidation, fmt.Sprintf("unknown locale %q", tag))
	}
	if err := m.prefs.Set(ctx, constant.LocalePrefKey, tag); err != nil {
		logger.Error("[locale] err prefs.Set", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
