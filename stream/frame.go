package stream

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/settings"
)

// TokenState is the published state of one token.
type TokenState struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Rotation  float64 `json:"rotation"`
	ScaleX    float64 `json:"scaleX"`
	ScaleY    float64 `json:"scaleY"`
	Direction float64 `json:"direction"`
}

// Frame represents the state of every token on a scene at one tick.
type Frame struct {
	Scene  string       `json:"scene"`
	Tokens []TokenState `json:"tokens"`
}

// NewFrame creates a new Frame instance from the current scene.
func NewFrame(scene *document.Scene) *Frame {
	f := new(Frame)
	f.Scene = scene.ID
	f.Tokens = make([]TokenState, 0, len(scene.Tokens))
	for _, t := range scene.Tokens {
		dir, _ := t.Flags.Float(settings.ModuleID, "direction")
		f.Tokens = append(f.Tokens, TokenState{
			ID:        t.ID,
			X:         t.X,
			Y:         t.Y,
			Rotation:  t.Rotation,
			ScaleX:    t.ScaleX,
			ScaleY:    t.ScaleY,
			Direction: dir,
		})
	}
	return f
}

// Payload encodes the frame as JSON for MQTT subscribers.
func (f *Frame) Payload() ([]byte, error) {
	return json.Marshal(f)
}

// MarshalBinary converts a Frame into binary data: a token count followed by
// x, y, rotation and direction per token as little-endian float32s.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.Tokens)*16)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.Tokens)))
	for _, t := range f.Tokens {
		for _, v := range []float64{t.X, t.Y, t.Rotation, t.Direction} {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(v)))
		}
	}

	return data, nil
}
