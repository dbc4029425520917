package aboutface

import (
	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/facing"
	"github.com/matt-g-everett/aboutface/settings"
)

// SceneEnabled reports whether tokens on scene should track their movement. Scenes are enabled unless flagged otherwise.
func SceneEnabled(scene *document.Scene) bool {
	if scene == nil {
		return false
	}
	return scene.Flags.Bool(settings.ModuleID, FlagSceneEnabled, true)
}

// sceneDefault reads a scene flag, falling back to the world setting.
func (m *Module) sceneDefault(scene *document.Scene, flag string) bool {
	values := m.settings.Values()
	def := values.LockArrowRotation
	if flag == FlagLockRotation {
		def = values.LockRotation
	}
	if scene == nil {
		return def
	}
	return scene.Flags.Bool(settings.ModuleID, flag, def)
}

// PreCreateToken seeds the lock flags of a token about to be placed on scene.
func (m *Module) PreCreateToken(scene *document.Scene, token *document.Token) {
	if !SceneEnabled(scene) {
		return
	}
	if token.Flags == nil {
		token.Flags = make(document.Flags)
	}

	if _, ok := token.Flags.Lookup(settings.ModuleID, FlagLockArrowRotation); !ok {
		token.Flags.Set(settings.ModuleID, FlagLockArrowRotation, m.sceneDefault(scene, FlagLockArrowRotation))
	}
	if !token.LockRotation {
		token.LockRotation = m.sceneDefault(scene, FlagLockRotation)
	}
}

// PreUpdateToken turns a move into a rotation before the update is stored.
// The movement direction is recorded for the arrow unless it is locked, and
// the token is rotated unless its rotation is locked.
func (m *Module) PreUpdateToken(scene *document.Scene, token *document.Token, update *document.TokenUpdate) {
	if m.Paused() || !SceneEnabled(scene) || !update.Moves(token) {
		return
	}

	dir, ok := facing.Direction(token.Position(), update.Destination(token))
	if !ok {
		return
	}

	if !token.Flags.Bool(settings.ModuleID, FlagLockArrowRotation, false) {
		if update.Flags == nil {
			update.Flags = make(document.Flags)
		}
		update.Flags.Set(settings.ModuleID, FlagDirection, dir)
	}

	locked := token.LockRotation
	if update.LockRotation != nil {
		locked = *update.LockRotation
	}
	if locked {
		return
	}
	rotation := facing.Rotation(dir, m.settings.Facing())
	update.Rotation = &rotation
	m.log.Debug("token facing updated", "token", token.ID, "direction", dir, "rotation", rotation)
}

// CanvasReady records the scene now shown on the canvas.
func (m *Module) CanvasReady(scene *document.Scene) {
	m.mu.Lock()
	m.scene = scene
	m.mu.Unlock()
	m.log.Info("canvas ready", "scene", scene.ID, "tokens", len(scene.Tokens), "enabled", SceneEnabled(scene))
}

// RefreshToken returns the facing arrow to draw for token, or nil when none should be drawn.
func (m *Module) RefreshToken(token *document.Token, hovered bool) *facing.Indicator {
	if !SceneEnabled(m.Scene()) || !m.settings.IndicatorMode().Visible(hovered) {
		return nil
	}

	dir, ok := token.Flags.Float(settings.ModuleID, FlagDirection)
	if !ok {
		dir = facing.Normalize(token.Rotation - m.settings.Facing().Offset())
	}
	return facing.NewIndicator(token.Centre(), token.Size(), dir, token.Disposition)
}
