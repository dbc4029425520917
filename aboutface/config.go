package aboutface

import (
	"fmt"

	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/settings"
	"github.com/samber/lo"
)

// FormField is one input injected into a host configuration form.
type FormField struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Label   string `json:"label,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Default any    `json:"default,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Tab describes the tab the fields are placed on.
type Tab struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// ConfigForm is the set of fields the module adds to a scene or token sheet.
type ConfigForm struct {
	ModuleID string      `json:"moduleId"`
	Tab      Tab         `json:"tab"`
	Fields   []FormField `json:"fields"`
}

func flagField(flag string) string {
	return fmt.Sprintf("flags.%s.%s", settings.ModuleID, flag)
}

// SceneConfig builds the fields injected into the scene configuration sheet.
func (m *Module) SceneConfig(scene *document.Scene) ConfigForm {
	return ConfigForm{
		ModuleID: settings.ModuleID,
		Tab: Tab{
			Name:  settings.ModuleID,
			Label: "About Face",
			Icon:  "fas fa-caret-down fa-fw",
		},
		Fields: []FormField{
			{
				Name:    flagField(FlagSceneEnabled),
				Type:    "checkbox",
				Label:   "Enable About Face on this scene",
				Notes:   "Tokens on this scene rotate to face the direction they move.",
				Default: SceneEnabled(scene),
			},
			{
				Name:    flagField(FlagLockRotation),
				Type:    "checkbox",
				Label:   "Lock token rotation",
				Notes:   "Default rotation lock for tokens placed on this scene.",
				Default: m.sceneDefault(scene, FlagLockRotation),
			},
			{
				Name: "lockRotationButton",
				Type: "custom",
				HTML: `<button type="button" id="lockRotationButton">Apply to all tokens</button>`,
			},
			{
				Name:    flagField(FlagLockArrowRotation),
				Type:    "checkbox",
				Label:   "Lock arrow rotation",
				Notes:   "Default facing arrow lock for tokens placed on this scene.",
				Default: m.sceneDefault(scene, FlagLockArrowRotation),
			},
			{
				Name: "lockArrowRotationButton",
				Type: "custom",
				HTML: `<button type="button" id="lockArrowRotationButton">Apply to all tokens</button>`,
			},
		},
	}
}

// TokenConfig builds the fields injected into the token configuration sheet.
func (m *Module) TokenConfig(token *document.Token) ConfigForm {
	return ConfigForm{
		ModuleID: settings.ModuleID,
		Tab: Tab{
			Name:  "appearance",
			Label: "Appearance",
			Icon:  "fas fa-user fa-fw",
		},
		Fields: []FormField{
			{
				Name:    flagField(FlagLockArrowRotation),
				Type:    "checkbox",
				Label:   "Lock arrow rotation",
				Notes:   "Keep the facing arrow pointing the same way when the token moves.",
				Default: token.Flags.Bool(settings.ModuleID, FlagLockArrowRotation, m.settings.Values().LockArrowRotation),
			},
		},
	}
}

// ApplyLockRotation sets the rotation lock of every token on scene to state.
// Only tokens whose lock differs are updated; the applied updates are returned.
func (m *Module) ApplyLockRotation(scene *document.Scene, state bool) ([]*document.TokenUpdate, error) {
	updates := lo.FilterMap(scene.Tokens, func(t *document.Token, _ int) (*document.TokenUpdate, bool) {
		if t.LockRotation == state {
			return nil, false
		}
		return &document.TokenUpdate{ID: t.ID, LockRotation: lo.ToPtr(state)}, true
	})
	return updates, m.applyUpdates(scene, updates, FlagLockRotation, state)
}

// ApplyLockArrowRotation sets the arrow lock flag of every token on scene to state.
func (m *Module) ApplyLockArrowRotation(scene *document.Scene, state bool) ([]*document.TokenUpdate, error) {
	updates := lo.FilterMap(scene.Tokens, func(t *document.Token, _ int) (*document.TokenUpdate, bool) {
		if t.Flags.Bool(settings.ModuleID, FlagLockArrowRotation, false) == state {
			return nil, false
		}
		flags := make(document.Flags)
		flags.Set(settings.ModuleID, FlagLockArrowRotation, state)
		return &document.TokenUpdate{ID: t.ID, Flags: flags}, true
	})
	return updates, m.applyUpdates(scene, updates, FlagLockArrowRotation, state)
}

func (m *Module) applyUpdates(scene *document.Scene, updates []*document.TokenUpdate, flag string, state bool) error {
	if scene.Flags == nil {
		scene.Flags = make(document.Flags)
	}
	scene.Flags.Set(settings.ModuleID, flag, state)
	if len(updates) == 0 {
		return nil
	}
	if err := scene.ApplyUpdates(updates); err != nil {
		return err
	}
	m.log.Info("scene tokens updated", "scene", scene.ID, "flag", flag, "state", state, "count", len(updates))
	return nil
}
