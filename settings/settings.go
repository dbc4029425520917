// Package settings holds the world-level options of the module and persists them to disk.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/matt-g-everett/aboutface/canvas"
	"github.com/matt-g-everett/aboutface/facing"
	"github.com/restartfu/gophig"
)

// ModuleID namespaces settings and document flags.
const ModuleID = "about-face"

// Setting names.
const (
	DisableAnimations = "disableAnimations"
	LockRotation      = "lockRotation"
	LockArrowRotation = "lockArrowRotation"
	FacingDirection   = "facingDirection"
	IndicatorMode     = "indicatorMode"
	AnimationEasing   = "animationEasing"
)

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid setting value")
)

// Values is the persisted form of every setting.
type Values struct {
	DisableAnimations int
	LockRotation      bool
	LockArrowRotation bool
	FacingDirection   string
	IndicatorMode     string
	AnimationEasing   string
}

// Defaults returns the values used when nothing has been stored yet.
func Defaults() Values {
	return Values{
		DisableAnimations: 0,
		LockRotation:      false,
		LockArrowRotation: false,
		FacingDirection:   string(facing.Down),
		IndicatorMode:     string(facing.IndicatorHover),
		AnimationEasing:   "",
	}
}

// Validate checks every value against its allowed range.
func (v Values) Validate() error {
	if _, err := canvas.SnapPolicyFromOrdinal(v.DisableAnimations); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, DisableAnimations, err)
	}
	if _, err := facing.ParseFacing(v.FacingDirection); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, FacingDirection, err)
	}
	if _, err := facing.ParseIndicatorMode(v.IndicatorMode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, IndicatorMode, err)
	}
	if _, err := canvas.EasingByName(v.AnimationEasing); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, AnimationEasing, err)
	}
	return nil
}

// Store gives keyed access to the module settings.
type Store struct {
	log    *slog.Logger
	load   func() (Values, error)
	save   func(Values) error
	values Values
	mu     sync.RWMutex
}

// NewStore creates a Store backed by the TOML file at path.
// An empty path keeps the settings in memory only.
func NewStore(log *slog.Logger, path string) *Store {
	s := new(Store)
	s.log = log
	s.values = Defaults()
	if path != "" {
		g := gophig.NewGophig[Values](path, gophig.TOMLMarshaler{}, os.ModePerm)
		s.load = g.LoadConf
		s.save = g.SaveConf
	}
	return s
}

// Load reads the settings file, writing the defaults first if it does not exist yet.
func (s *Store) Load() error {
	if s.load == nil {
		return nil
	}

	_, err := s.load()
	if os.IsNotExist(err) {
		if err = s.save(Defaults()); err != nil {
			return err
		}
		s.log.Info("wrote default settings")
	}
	v, err := s.load()
	if err != nil {
		return err
	}
	if err = v.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.values = v
	s.mu.Unlock()
	return nil
}

// Save writes the current settings to disk.
func (s *Store) Save() error {
	if s.save == nil {
		return nil
	}
	return s.save(s.Values())
}

// Values returns a copy of all settings.
func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Get returns the value of a setting within a module namespace.
func (s *Store) Get(module, name string) (any, error) {
	if module != ModuleID {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownSetting, module, name)
	}

	v := s.Values()
	switch name {
	case DisableAnimations:
		return v.DisableAnimations, nil
	case LockRotation:
		return v.LockRotation, nil
	case LockArrowRotation:
		return v.LockArrowRotation, nil
	case FacingDirection:
		return v.FacingDirection, nil
	case IndicatorMode:
		return v.IndicatorMode, nil
	case AnimationEasing:
		return v.AnimationEasing, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownSetting, module, name)
}

// Set validates and stores a setting, then persists the store.
func (s *Store) Set(module, name string, value any) error {
	if module != ModuleID {
		return fmt.Errorf("%w: %s.%s", ErrUnknownSetting, module, name)
	}

	s.mu.Lock()
	v := s.values
	var ok bool
	switch name {
	case DisableAnimations:
		v.DisableAnimations, ok = value.(int)
	case LockRotation:
		v.LockRotation, ok = value.(bool)
	case LockArrowRotation:
		v.LockArrowRotation, ok = value.(bool)
	case FacingDirection:
		v.FacingDirection, ok = value.(string)
	case IndicatorMode:
		v.IndicatorMode, ok = value.(string)
	case AnimationEasing:
		v.AnimationEasing, ok = value.(string)
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %s.%s", ErrUnknownSetting, module, name)
	}
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s expects a different type, got %T", ErrInvalidValue, name, value)
	}
	if err := v.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.values = v
	s.mu.Unlock()

	s.log.Debug("setting changed", "name", name, "value", value)
	return s.Save()
}

// SnapPolicy decodes the disableAnimations setting.
func (s *Store) SnapPolicy() canvas.SnapPolicy {
	p, _ := canvas.SnapPolicyFromOrdinal(s.Values().DisableAnimations)
	return p
}

// Facing returns the configured artwork facing.
func (s *Store) Facing() facing.Facing {
	f, err := facing.ParseFacing(s.Values().FacingDirection)
	if err != nil {
		return facing.Down
	}
	return f
}

// IndicatorMode returns when facing arrows are drawn.
func (s *Store) IndicatorMode() facing.IndicatorMode {
	m, err := facing.ParseIndicatorMode(s.Values().IndicatorMode)
	if err != nil {
		return facing.IndicatorHover
	}
	return m
}

// Easing returns the configured easing function, or nil for linear progress.
func (s *Store) Easing() canvas.Easing {
	fn, _ := canvas.EasingByName(s.Values().AnimationEasing)
	return fn
}
