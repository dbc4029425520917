package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/matt-g-everett/aboutface/aboutface"
	"github.com/matt-g-everett/aboutface/canvas"
	"github.com/matt-g-everett/aboutface/document"
	"github.com/matt-g-everett/aboutface/keybind"
)

// Mover moves tokens on the active scene, animating them to the destination.
type Mover interface {
	MoveToken(id string, x, y float64) error
}

// Api exposes the module's configuration forms and actions over HTTP.
type Api struct {
	log      *slog.Logger
	module   *aboutface.Module
	bindings *keybind.Registry
	mover    Mover
	// Held while reading or changing scene documents.
	sceneLock sync.Locker
	engine    *gin.Engine
}

type lockRequest struct {
	State bool `json:"state"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewApi creates an instance of an Api.
func NewApi(log *slog.Logger, module *aboutface.Module, bindings *keybind.Registry, mover Mover, sceneLock sync.Locker) *Api {
	a := new(Api)
	a.log = log
	a.module = module
	a.bindings = bindings
	a.mover = mover
	a.sceneLock = sceneLock

	a.engine = gin.New()
	a.engine.Use(gin.Recovery())
	a.engine.GET("/scenes/:id/config", a.sceneConfig)
	a.engine.POST("/scenes/:id/lock-rotation", a.lockRotation)
	a.engine.POST("/scenes/:id/lock-arrow-rotation", a.lockArrowRotation)
	a.engine.GET("/tokens/:id/config", a.tokenConfig)
	a.engine.GET("/tokens/:id/indicator", a.indicator)
	a.engine.POST("/tokens/:id/move", a.move)
	a.engine.POST("/keybindings/:name", a.trigger)
	a.engine.GET("/easings", a.easings)
	return a
}

// Handler returns the HTTP handler serving the routes.
func (a *Api) Handler() http.Handler {
	return a.engine
}

// Serve listens on addr until the server fails.
func (a *Api) Serve(addr string) error {
	a.log.Info("listening", "address", addr)
	return a.engine.Run(addr)
}

func (a *Api) scene(c *gin.Context) (*document.Scene, bool) {
	scene := a.module.Scene()
	if scene == nil || scene.ID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "scene not active"})
		return nil, false
	}
	return scene, true
}

func (a *Api) token(c *gin.Context) (*document.Token, bool) {
	scene := a.module.Scene()
	if scene != nil {
		if t, ok := scene.Token(c.Param("id")); ok {
			return t, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "token not found"})
	return nil, false
}

func (a *Api) sceneConfig(c *gin.Context) {
	a.sceneLock.Lock()
	defer a.sceneLock.Unlock()

	scene, ok := a.scene(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.module.SceneConfig(scene))
}

func (a *Api) tokenConfig(c *gin.Context) {
	a.sceneLock.Lock()
	defer a.sceneLock.Unlock()

	t, ok := a.token(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.module.TokenConfig(t))
}

func (a *Api) indicator(c *gin.Context) {
	a.sceneLock.Lock()
	defer a.sceneLock.Unlock()

	t, ok := a.token(c)
	if !ok {
		return
	}
	ind := a.module.RefreshToken(t, c.Query("hovered") == "true")
	if ind == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"points": ind.Points,
		"colour": ind.Hex(),
	})
}

func (a *Api) lockRotation(c *gin.Context) {
	a.applyLock(c, a.module.ApplyLockRotation)
}

func (a *Api) lockArrowRotation(c *gin.Context) {
	a.applyLock(c, a.module.ApplyLockArrowRotation)
}

func (a *Api) applyLock(c *gin.Context, apply func(*document.Scene, bool) ([]*document.TokenUpdate, error)) {
	var req lockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a.sceneLock.Lock()
	defer a.sceneLock.Unlock()

	scene, ok := a.scene(c)
	if !ok {
		return
	}
	updates, err := apply(scene, req.State)
	if err != nil {
		a.log.Error("lock update failed", "scene", scene.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": len(updates)})
}

// move takes no scene lock; the Mover serialises with the animation loop itself.
func (a *Api) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.mover.MoveToken(c.Param("id"), req.X, req.Y); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusAccepted)
}

func (a *Api) trigger(c *gin.Context) {
	a.sceneLock.Lock()
	defer a.sceneLock.Unlock()

	err := a.bindings.Trigger(c.Param("name"), c.Query("gm") == "true")
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, keybind.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, keybind.ErrRestricted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// easings lists the selectable easing curves with a sampled preview of each.
func (a *Api) easings(c *gin.Context) {
	out := make(map[string][]float64)
	for _, name := range canvas.EasingNames() {
		fn, _ := canvas.EasingByName(name)
		out[name] = canvas.EasingLUT(fn, 11)
	}
	c.JSON(http.StatusOK, out)
}
