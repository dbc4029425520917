package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/matt-g-everett/aboutface/aboutface"
	"github.com/matt-g-everett/aboutface/canvas"
	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/facing"
	"github.com/matt-g-everett/aboutface/keybind"
	"github.com/matt-g-everett/aboutface/settings"
	"github.com/matt-g-everett/aboutface/stream"
)

// app plays the part of the host engine for the module.
type app struct {
	log      *slog.Logger
	config   Config
	settings *settings.Store

	module       *aboutface.Module
	bindings     *keybind.Registry
	ticker       *canvas.Ticker
	defaultFrame canvas.FrameFunc
	streamer     *stream.Streamer

	scene      *document.Scene
	controlled map[string]bool
	// Guards the scene and its tokens.
	mu sync.Mutex
}

func newApp(log *slog.Logger, config Config, store *settings.Store) *app {
	a := new(app)
	a.log = log
	a.config = config
	a.settings = store
	a.bindings = keybind.NewRegistry(settings.ModuleID)
	a.controlled = make(map[string]bool)

	// Without the module override, attributes always interpolate.
	a.defaultFrame = canvas.NewAnimator(log, canvas.SnapPolicy{}).AnimateFrame
	a.ticker = canvas.NewTicker(log, a.locked(a.defaultFrame))
	a.ticker.OnStep(a.publish)
	return a
}

// locked runs a frame function while holding the scene lock.
func (a *app) locked(fn canvas.FrameFunc) canvas.FrameFunc {
	return func(dt float64, anim *canvas.Animation) bool {
		a.mu.Lock()
		defer a.mu.Unlock()
		return fn(dt, anim)
	}
}

func (a *app) RegisterKeybinding(b keybind.Binding) error {
	return a.bindings.Register(b)
}

func (a *app) OverrideAnimateFrame(fn canvas.FrameFunc) {
	a.ticker.SetFrameFunc(a.locked(fn))
}

func (a *app) RestoreAnimateFrame() {
	a.ticker.SetFrameFunc(a.locked(a.defaultFrame))
}

// ControlledTokens is called from keybindings, which run with the scene lock held.
func (a *app) ControlledTokens() []*document.Token {
	var tokens []*document.Token
	for _, t := range a.scene.Tokens {
		if a.controlled[t.ID] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func (a *app) Notify(msg string) {
	a.log.Info(msg)
}

// start registers the module and builds the configured scene.
func (a *app) start(module *aboutface.Module) error {
	a.module = module
	if err := module.Register(a); err != nil {
		return err
	}

	sc := a.config.Scene
	scene := document.NewScene(sc.ID, sc.Name, sc.GridSize)
	if sc.Enabled != nil {
		scene.Flags.Set(settings.ModuleID, aboutface.FlagSceneEnabled, *sc.Enabled)
	}
	for _, tc := range sc.Tokens {
		t := document.NewToken(tc.ID, tc.Name, tc.X, tc.Y, sc.GridSize, sc.GridSize)
		t.Disposition = tc.Disposition
		module.PreCreateToken(scene, t)
		scene.Tokens = append(scene.Tokens, t)
		a.controlled[t.ID] = tc.Controlled
	}

	a.mu.Lock()
	a.scene = scene
	a.mu.Unlock()
	module.CanvasReady(scene)
	return nil
}

func (a *app) stop() {
	a.module.Unregister()
	if err := a.settings.Save(); err != nil {
		a.log.Error("saving settings failed", "error", err)
	}
}

// MoveToken runs the module's pre-update hook and animates the token to its new position.
func (a *app) MoveToken(id string, x, y float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.scene.Token(id)
	if !ok {
		return fmt.Errorf("scene %s has no token %q", a.scene.ID, id)
	}

	u := &document.TokenUpdate{ID: id, X: &x, Y: &y}
	a.module.PreUpdateToken(a.scene, t, u)

	jobs := []*canvas.Job{
		canvas.NewJob(t, canvas.X, t.X, x),
		canvas.NewJob(t, canvas.Y, t.Y, y),
	}
	if u.Rotation != nil {
		jobs = append(jobs, canvas.NewJob(t, canvas.Rotation, t.Rotation, facing.Towards(t.Rotation, *u.Rotation)))
	}
	t.Flags.Merge(u.Flags)

	anim := canvas.NewAnimation("token."+id+".move", a.config.MoveMs, jobs...)
	anim.Easing = a.settings.Easing()
	anim.OnComplete = func() {
		t.Rotation = facing.Normalize(t.Rotation)
	}
	a.ticker.Add(anim)
	return nil
}

func (a *app) publish(float64) {
	if a.streamer == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.streamer.SendFrame(a.scene); err != nil {
		a.log.Debug("frame not sent", "error", err)
	}
}

// run drives the animations until ctx is cancelled.
func (a *app) run(ctx context.Context) {
	rate := a.config.FrameRate
	if rate <= 0 {
		rate = 30
	}
	interval := time.Duration(float64(time.Second) / rate)
	a.ticker.Run(ctx, interval)
}
