// Package aboutface rotates tokens to face the direction they move in.
package aboutface

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/df-mc/atomic"
	"github.com/matt-g-everett/aboutface/canvas"
	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/keybind"
	"github.com/matt-g-everett/aboutface/settings"
)

// Flag names stored in the module namespace of scene and token documents.
const (
	FlagSceneEnabled      = "sceneEnabled"
	FlagLockRotation      = "lockRotation"
	FlagLockArrowRotation = "lockArrowRotation"
	FlagDirection         = "direction"
)

// Keybinding names.
const (
	BindingToggleTokenRotation = "toggleTokenRotation"
	BindingLockRotation        = "lockRotation"
)

// Host is the engine the module plugs into.
type Host interface {
	RegisterKeybinding(b keybind.Binding) error
	// OverrideAnimateFrame replaces the engine's per-frame animator until RestoreAnimateFrame is called.
	OverrideAnimateFrame(fn canvas.FrameFunc)
	RestoreAnimateFrame()
	ControlledTokens() []*document.Token
	Notify(msg string)
}

// Module holds the state of the module between hooks.
type Module struct {
	log      *slog.Logger
	settings *settings.Store

	host       Host
	animator   *canvas.Animator
	overridden bool
	paused     atomic.Bool
	scene      *document.Scene
	mu         sync.Mutex
}

// New creates an instance of a Module.
func New(log *slog.Logger, store *settings.Store) *Module {
	m := new(Module)
	m.log = log
	m.settings = store
	return m
}

// Register wires the module into host. The frame animator is only overridden
// when the settings force rotation or scale to snap.
func (m *Module) Register(host Host) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.host = host
	err := host.RegisterKeybinding(keybind.Binding{
		Name:       BindingToggleTokenRotation,
		Hint:       "Pause or resume rotating tokens as they move.",
		OnDown:     m.ToggleTokenRotation,
		Restricted: false,
		Precedence: keybind.Normal,
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", BindingToggleTokenRotation, err)
	}
	err = host.RegisterKeybinding(keybind.Binding{
		Name:       BindingLockRotation,
		Hint:       "Toggle rotation lock on the controlled tokens.",
		OnDown:     m.LockControlledRotation,
		Restricted: true,
		Precedence: keybind.Normal,
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", BindingLockRotation, err)
	}

	policy := m.settings.SnapPolicy()
	m.animator = canvas.NewAnimator(m.log, policy)
	if policy.Enabled() {
		host.OverrideAnimateFrame(m.animator.AnimateFrame)
		m.overridden = true
		m.log.Info("frame animator overridden", "forceRotation", policy.ForceRotation, "forceScale", policy.ForceScale)
	}
	return nil
}

// Unregister restores the host's animator if the module replaced it.
func (m *Module) Unregister() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.overridden {
		m.host.RestoreAnimateFrame()
		m.overridden = false
		m.log.Info("frame animator restored")
	}
	m.host = nil
}

// Animator returns the animator built at registration, or nil before Register.
func (m *Module) Animator() *canvas.Animator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animator
}

// Paused reports whether rotation tracking has been paused with the keybinding.
func (m *Module) Paused() bool {
	return m.paused.Load()
}

// Scene returns the scene reported by the last CanvasReady.
func (m *Module) Scene() *document.Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scene
}

// ToggleTokenRotation pauses or resumes rotation tracking.
func (m *Module) ToggleTokenRotation() error {
	m.mu.Lock()
	paused := !m.paused.Load()
	m.paused.Store(paused)
	host := m.host
	m.mu.Unlock()

	m.log.Debug("token rotation toggled", "paused", paused)
	if host != nil {
		if paused {
			host.Notify("About Face: token rotation paused")
		} else {
			host.Notify("About Face: token rotation resumed")
		}
	}
	return nil
}

// LockControlledRotation flips the rotation lock of every controlled token.
func (m *Module) LockControlledRotation() error {
	m.mu.Lock()
	host := m.host
	m.mu.Unlock()
	if host == nil {
		return fmt.Errorf("module not registered")
	}

	tokens := host.ControlledTokens()
	if len(tokens) == 0 {
		return nil
	}

	var locked bool
	for _, t := range tokens {
		locked = !t.LockRotation
		t.Apply(&document.TokenUpdate{ID: t.ID, LockRotation: &locked})
	}
	if locked {
		host.Notify("About Face: rotation locked")
	} else {
		host.Notify("About Face: rotation unlocked")
	}
	return nil
}
