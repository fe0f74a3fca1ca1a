// Package assets loads 3D models referenced by level props without ever
// blocking the frame loop. Disk I/O runs on worker goroutines; the GPU
// upload and future resolution happen on the main thread at the next frame
// boundary, inside Poll. A missing file resolves to a procedural placeholder
// so the objective referencing it stays completable.
package assets

import (
	"os"
	"sync"

	"dreamgate/internal/events"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Pending is the future returned by Load. It resolves at a frame boundary;
// until then the requesting component renders nothing or a placeholder.
type Pending struct {
	Path string

	done        bool
	model       rl.Model
	placeholder bool
	callbacks   []func(model rl.Model, placeholder bool)
}

func (p *Pending) Done() bool { return p.done }

// Model returns the loaded model. Only valid once Done reports true.
func (p *Pending) Model() (rl.Model, bool) { return p.model, p.done }

// Placeholder reports whether the asset failed to resolve and a procedural
// stand-in was substituted.
func (p *Pending) Placeholder() bool { return p.placeholder }

// OnReady registers a callback invoked when the future resolves. If it
// already resolved, the callback runs immediately.
func (p *Pending) OnReady(fn func(model rl.Model, placeholder bool)) {
	if fn == nil {
		return
	}
	if p.done {
		fn(p.model, p.placeholder)
		return
	}
	p.callbacks = append(p.callbacks, fn)
}

func (p *Pending) resolve(model rl.Model, placeholder bool) {
	p.done = true
	p.model = model
	p.placeholder = placeholder
	for _, fn := range p.callbacks {
		fn(model, placeholder)
	}
	p.callbacks = nil
}

type ioResult struct {
	pending *Pending
	exists  bool
	gen     int
}

// Cache deduplicates model loads by path and owns the loaded GPU resources.
type Cache struct {
	bus *events.Bus

	models  map[string]rl.Model
	futures map[string]*Pending

	// gen counts Unload calls. A disk check still in flight when its level
	// unloads lands in results with a stale gen and Poll drops it, so an old
	// level's onReady closures can never run against the next level.
	gen int

	mu      sync.Mutex
	results []ioResult
}

func NewCache(bus *events.Bus) *Cache {
	return &Cache{
		bus:     bus,
		models:  make(map[string]rl.Model),
		futures: make(map[string]*Pending),
	}
}

// Load requests a model by path. Repeated requests for the same path share
// one future. The returned future resolves during a later Poll, never within
// this call.
func (c *Cache) Load(path string) *Pending {
	if p, ok := c.futures[path]; ok {
		return p
	}
	p := &Pending{Path: path}
	c.futures[path] = p

	gen := c.gen
	go func() {
		_, err := os.Stat(path)
		c.mu.Lock()
		c.results = append(c.results, ioResult{pending: p, exists: err == nil, gen: gen})
		c.mu.Unlock()
	}()
	return p
}

// Poll finishes any loads whose disk check completed: uploads the model on
// the calling (main) thread and resolves the futures. Call once per frame,
// at the frame boundary.
func (c *Cache) Poll() {
	c.mu.Lock()
	ready := c.results
	c.results = nil
	c.mu.Unlock()

	for _, r := range ready {
		if r.gen != c.gen {
			continue
		}
		if r.exists {
			model := rl.LoadModel(r.pending.Path)
			c.models[r.pending.Path] = model
			r.pending.resolve(model, false)
			continue
		}
		log.Warn("asset not found, substituting placeholder", "path", r.pending.Path)
		if c.bus != nil {
			c.bus.Publish(events.Event{Kind: events.AssetMissing, Path: r.pending.Path, Message: "asset missing: " + r.pending.Path})
		}
		model := PlaceholderModel()
		c.models[r.pending.Path] = model
		r.pending.resolve(model, true)
	}
}

// PlaceholderModel is the minimal procedural geometry substituted for a
// missing asset.
func PlaceholderModel() rl.Model {
	mesh := rl.GenMeshCube(0.5, 0.5, 0.5)
	return rl.LoadModelFromMesh(mesh)
}

// Bounds returns the model's bounding box at identity transform, used for
// auto-grounding and collider sizing.
func Bounds(model rl.Model) rl.BoundingBox {
	return rl.GetModelBoundingBox(model)
}

// Unload drops every cached model and invalidates loads still in flight.
// Called after the scene has been torn down.
func (c *Cache) Unload() {
	for _, model := range c.models {
		rl.UnloadModel(model)
	}
	c.models = make(map[string]rl.Model)
	c.futures = make(map[string]*Pending)
	c.gen++
	c.mu.Lock()
	c.results = nil
	c.mu.Unlock()
}
