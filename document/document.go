// Package document models the scene and token records the module reads and updates.
package document

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/matt-g-everett/aboutface/canvas"
)

// Disposition of a token towards the players.
const (
	Hostile  = -1
	Neutral  = 0
	Friendly = 1
)

// Token is a movable game piece on a scene.
type Token struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Rotation     float64 `json:"rotation"`
	ScaleX       float64 `json:"scaleX"`
	ScaleY       float64 `json:"scaleY"`
	LockRotation bool    `json:"lockRotation"`
	Disposition  int     `json:"disposition"`
	Flags        Flags   `json:"flags"`
}

// NewToken creates a Token with unit scale.
func NewToken(id, name string, x, y, width, height float64) *Token {
	t := new(Token)
	t.ID = id
	t.Name = name
	t.X = x
	t.Y = y
	t.Width = width
	t.Height = height
	t.ScaleX = 1
	t.ScaleY = 1
	t.Flags = make(Flags)
	return t
}

// Position returns the top-left corner of the token.
func (t *Token) Position() mgl64.Vec2 {
	return mgl64.Vec2{t.X, t.Y}
}

// Centre returns the centre point of the token in pixels.
func (t *Token) Centre() mgl64.Vec2 {
	return mgl64.Vec2{t.X + t.Width/2, t.Y + t.Height/2}
}

// Size returns the shorter side of the token.
func (t *Token) Size() float64 {
	if t.Width < t.Height {
		return t.Width
	}
	return t.Height
}

// SetAttribute lets the token be driven by canvas animations.
func (t *Token) SetAttribute(attr canvas.Attribute, value float64) error {
	switch attr {
	case canvas.X:
		t.X = value
	case canvas.Y:
		t.Y = value
	case canvas.Rotation:
		t.Rotation = value
	case canvas.ScaleX:
		t.ScaleX = value
	case canvas.ScaleY:
		t.ScaleY = value
	default:
		return fmt.Errorf("token %s has no attribute %q", t.ID, attr)
	}
	return nil
}

// Apply merges an update into the token.
func (t *Token) Apply(u *TokenUpdate) {
	if u.X != nil {
		t.X = *u.X
	}
	if u.Y != nil {
		t.Y = *u.Y
	}
	if u.Rotation != nil {
		t.Rotation = *u.Rotation
	}
	if u.LockRotation != nil {
		t.LockRotation = *u.LockRotation
	}
	if t.Flags == nil {
		t.Flags = make(Flags)
	}
	t.Flags.Merge(u.Flags)
}

// TokenUpdate is a partial change to a token. Nil fields are left untouched.
type TokenUpdate struct {
	ID           string   `json:"_id"`
	X            *float64 `json:"x,omitempty"`
	Y            *float64 `json:"y,omitempty"`
	Rotation     *float64 `json:"rotation,omitempty"`
	LockRotation *bool    `json:"lockRotation,omitempty"`
	Flags        Flags    `json:"flags,omitempty"`
}

// Moves reports whether the update changes the token's position.
func (u *TokenUpdate) Moves(t *Token) bool {
	return (u.X != nil && *u.X != t.X) || (u.Y != nil && *u.Y != t.Y)
}

// Destination returns the position the token will have once the update is applied.
func (u *TokenUpdate) Destination(t *Token) mgl64.Vec2 {
	dest := t.Position()
	if u.X != nil {
		dest[0] = *u.X
	}
	if u.Y != nil {
		dest[1] = *u.Y
	}
	return dest
}

// Scene holds the tokens placed on one map.
type Scene struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	GridSize float64  `json:"gridSize"`
	Tokens   []*Token `json:"tokens"`
	Flags    Flags    `json:"flags"`
}

// NewScene creates an empty Scene.
func NewScene(id, name string, gridSize float64) *Scene {
	s := new(Scene)
	s.ID = id
	s.Name = name
	s.GridSize = gridSize
	s.Flags = make(Flags)
	return s
}

// Token looks up a token by ID.
func (s *Scene) Token(id string) (*Token, bool) {
	for _, t := range s.Tokens {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// ApplyUpdates applies a batch of embedded token updates.
// Every update must name an existing token; nothing is applied otherwise.
func (s *Scene) ApplyUpdates(updates []*TokenUpdate) error {
	for _, u := range updates {
		if _, ok := s.Token(u.ID); !ok {
			return fmt.Errorf("scene %s has no token %q", s.ID, u.ID)
		}
	}
	for _, u := range updates {
		t, _ := s.Token(u.ID)
		t.Apply(u)
	}
	return nil
}
