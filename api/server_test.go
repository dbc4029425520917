package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/aboutface/aboutface"
	"github.com/matt-g-everett/aboutface/canvas"
	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/keybind"
	"github.com/matt-g-everett/aboutface/settings"
)

type testHost struct {
	bindings *keybind.Registry
	tokens   []*document.Token
}

func (h *testHost) RegisterKeybinding(b keybind.Binding) error { return h.bindings.Register(b) }
func (h *testHost) OverrideAnimateFrame(canvas.FrameFunc)       {}
func (h *testHost) RestoreAnimateFrame()                        {}
func (h *testHost) ControlledTokens() []*document.Token         { return h.tokens }
func (h *testHost) Notify(string)                               {}

type testMover struct {
	moves map[string][2]float64
}

func (m *testMover) MoveToken(id string, x, y float64) error {
	if id != "a" && id != "b" {
		return fmt.Errorf("no token %q", id)
	}
	m.moves[id] = [2]float64{x, y}
	return nil
}

func newTestApi(t *testing.T) (*Api, *testMover, *document.Scene) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := aboutface.New(log, settings.NewStore(log, ""))
	h := &testHost{bindings: keybind.NewRegistry(settings.ModuleID)}
	if err := m.Register(h); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	scene := document.NewScene("s1", "Crypt", 100)
	scene.Tokens = []*document.Token{
		document.NewToken("a", "A", 0, 0, 100, 100),
		document.NewToken("b", "B", 100, 0, 100, 100),
	}
	h.tokens = scene.Tokens
	m.CanvasReady(scene)

	mover := &testMover{moves: make(map[string][2]float64)}
	return NewApi(log, m, h.bindings, mover, new(sync.Mutex)), mover, scene
}

func TestRoutes(t *testing.T) {
	a, mover, _ := newTestApi(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"Scene config", http.MethodGet, "/scenes/s1/config", "", http.StatusOK},
		{"Other scene", http.MethodGet, "/scenes/s2/config", "", http.StatusNotFound},
		{"Token config", http.MethodGet, "/tokens/a/config", "", http.StatusOK},
		{"Missing token", http.MethodGet, "/tokens/z/config", "", http.StatusNotFound},
		{"Indicator hidden", http.MethodGet, "/tokens/a/indicator", "", http.StatusNoContent},
		{"Indicator hovered", http.MethodGet, "/tokens/a/indicator?hovered=true", "", http.StatusOK},
		{"Bad lock body", http.MethodPost, "/scenes/s1/lock-rotation", "{", http.StatusBadRequest},
		{"Restricted binding", http.MethodPost, "/keybindings/lockRotation", "", http.StatusForbidden},
		{"GM binding", http.MethodPost, "/keybindings/lockRotation?gm=true", "", http.StatusNoContent},
		{"Unknown binding", http.MethodPost, "/keybindings/dance", "", http.StatusNotFound},
		{"Move", http.MethodPost, "/tokens/a/move", `{"x":200,"y":100}`, http.StatusAccepted},
		{"Easings", http.MethodGet, "/easings", "", http.StatusOK},
		{"Move missing", http.MethodPost, "/tokens/z/move", `{"x":200,"y":100}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			a.Handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("Expected status %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}

	if mover.moves["a"] != [2]float64{200, 100} {
		t.Errorf("Expected token a to be moved to (200, 100), got %v", mover.moves["a"])
	}
}

func TestLockRotationRoute(t *testing.T) {
	a, _, scene := newTestApi(t)

	req := httptest.NewRequest(http.MethodPost, "/scenes/s1/lock-arrow-rotation", strings.NewReader(`{"state":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body struct {
		Updated int `json:"updated"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body.Updated != 2 {
		t.Errorf("Expected 2 updated tokens, got %d", body.Updated)
	}
	for _, tok := range scene.Tokens {
		if !tok.Flags.Bool(settings.ModuleID, aboutface.FlagLockArrowRotation, false) {
			t.Errorf("Expected token %s arrow to be locked", tok.ID)
		}
	}
}
