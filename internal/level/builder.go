package level

import (
	"fmt"

	"dreamgate/internal/assets"
	"dreamgate/internal/components"
	"dreamgate/internal/engine"
	"dreamgate/internal/events"
	"dreamgate/internal/interaction"
	"dreamgate/internal/physics"
	"dreamgate/internal/puzzle"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Runtime is the set of core systems a level builds into.
type Runtime struct {
	Scene     *engine.Scene
	Colliders *physics.Store
	Interact  *interaction.System
	Puzzles   *puzzle.Manager
	Assets    *assets.Cache
	Bus       *events.Bus
}

// Built is what the frame driver needs back from a load: where to put the
// rig, and which trigger volumes lead to other levels.
type Built struct {
	Name    string
	Spawn   SpawnPose
	Portals []*PortalVolume
	Props   map[string]*engine.GameObject
}

// PortalVolume is a walk-in exit. The frame driver tests the rig's body box
// against it every frame.
type PortalVolume struct {
	Node   *engine.GameObject
	Box    physics.AABB
	Target string
	Label  string
}

// Build instantiates a validated descriptor into the runtime. Prop assets
// resolve asynchronously; until a model arrives the prop is an empty node
// with its collider already in place.
func Build(rt Runtime, desc *Descriptor) (*Built, error) {
	built := &Built{
		Name:  desc.Name,
		Spawn: *desc.Spawn,
		Props: make(map[string]*engine.GameObject, len(desc.Props)),
	}

	rt.Colliders.SetGroundPlane(desc.Environment.GroundY)

	for _, d := range desc.Decorations {
		buildDecoration(rt, d)
	}
	for _, p := range desc.Props {
		built.Props[p.Name] = buildProp(rt, desc.Environment.GroundY, p)
	}
	for _, p := range desc.Portals {
		built.Portals = append(built.Portals, buildPortal(rt, p))
	}

	if err := buildObjectives(rt, desc, built); err != nil {
		return nil, err
	}

	log.Info("level built",
		"name", desc.Name,
		"decorations", len(desc.Decorations),
		"props", len(desc.Props),
		"objectives", len(desc.Objectives))
	if rt.Bus != nil {
		rt.Bus.Publish(events.Event{Kind: events.LevelLoaded, Path: desc.Name})
	}
	return built, nil
}

func buildDecoration(rt Runtime, d Decoration) {
	obj := engine.NewGameObject(d.Name)
	obj.Transform.Position = vec3(d.Position)
	obj.Transform.Rotation = vec3(d.Rotation)

	size := vec3(d.Size)
	var mesh rl.Mesh
	if d.Shape == "sphere" {
		mesh = rl.GenMeshSphere(size.X/2, 16, 16)
	} else {
		mesh = rl.GenMeshCube(size.X, size.Y, size.Z)
	}
	model := rl.LoadModelFromMesh(mesh)
	obj.AddComponent(components.NewModelRenderer(model, lookupColor(d.Color)))

	collider := components.NewBoxCollider(size)
	collider.Offset = rl.Vector3{Y: 0}
	obj.AddComponent(collider)

	if d.Solid {
		rt.Colliders.AddStatic(collider.GetAABB())
	}
	rt.Scene.AddGameObject(obj)
}

func buildProp(rt Runtime, groundY float32, p Prop) *engine.GameObject {
	obj := engine.NewGameObject(p.Name)
	obj.Transform.Position = vec3(p.Position)
	obj.Transform.Rotation = vec3(p.Rotation)
	scale := p.Scale
	if scale == 0 {
		scale = 1
	}
	obj.Transform.Scale = rl.Vector3{X: scale, Y: scale, Z: scale}

	// Collider exists before the asset arrives so interaction and collision
	// never see a gap; the real bounds replace it once the model resolves.
	collider := components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
	obj.AddComponent(collider)

	var it *interaction.Interactable
	if p.Grabbable || p.Activatable {
		var capability interaction.Capability
		if p.Grabbable {
			capability |= interaction.CanGrab
		}
		if p.Activatable {
			capability |= interaction.CanActivate
		}
		it = interaction.NewInteractable(capability)
		obj.AddComponent(it)
		wireHoverHighlight(obj, it)
		rt.Interact.Register(it)
	}

	color := lookupColor(p.Color)
	onReady := func(model rl.Model, placeholder bool) {
		obj.AddComponent(components.NewSharedModelRenderer(model, color))

		// Auto-ground and size the collider from the model's bounding box.
		// The descriptor position is the prop's ground point.
		bounds := assets.Bounds(model)
		size := rl.Vector3Subtract(bounds.Max, bounds.Min)
		if size.X > 0 && size.Y > 0 && size.Z > 0 {
			collider.Size = size
			center := rl.Vector3Scale(rl.Vector3Add(bounds.Min, bounds.Max), 0.5)
			collider.Offset = rl.Vector3{Y: (center.Y - bounds.Min.Y) * scale}
		}
		obj.Transform.Position.Y = groundY - bounds.Min.Y*scale

		if p.Solid && !p.Grabbable {
			rt.Colliders.AddStatic(collider.GetAABB())
		}
	}

	if p.Animated {
		pending := rt.Assets.LoadAnimated(p.Model)
		pending.OnReady(func(model rl.Model, placeholder bool) {
			onReady(model, placeholder)
			if !placeholder {
				obj.AddComponent(components.NewAnimator(model, pending.Clips()))
			}
		})
	} else {
		rt.Assets.Load(p.Model).OnReady(onReady)
	}

	rt.Scene.AddGameObject(obj)
	return obj
}

// wireHoverHighlight brightens a prop's tint while any source hovers it.
func wireHoverHighlight(obj *engine.GameObject, it *interaction.Interactable) {
	it.OnHoverEnter = func() {
		if r := engine.GetComponent[*components.ModelRenderer](obj); r != nil {
			r.Tint = rl.Yellow
		}
	}
	it.OnHoverExit = func() {
		if r := engine.GetComponent[*components.ModelRenderer](obj); r != nil {
			r.Tint = rl.White
		}
	}
}

func buildPortal(rt Runtime, p Portal) *PortalVolume {
	size := vec3(p.Size)
	if size == (rl.Vector3{}) {
		size = rl.Vector3{X: 1.2, Y: 2.2, Z: 0.6}
	}

	obj := engine.NewGameObject("portal:" + p.TargetLevel)
	obj.Transform.Position = vec3(p.Position)
	mesh := rl.GenMeshCube(size.X, size.Y, size.Z)
	model := rl.LoadModelFromMesh(mesh)
	obj.AddComponent(components.NewModelRenderer(model, rl.SkyBlue))
	rt.Scene.AddGameObject(obj)

	return &PortalVolume{
		Node:   obj,
		Box:    physics.NewAABBFromCenter(vec3(p.Position), size),
		Target: p.TargetLevel,
		Label:  p.Label,
	}
}

func buildObjectives(rt Runtime, desc *Descriptor, built *Built) error {
	for _, o := range desc.Objectives {
		switch o.Type {
		case "fetch":
			item := propInteractable(built, o.Item)
			if item == nil {
				return fmt.Errorf("level: objective %q: prop %q has no interactable (mark it grabbable)", o.ID, o.Item)
			}
			item.Enabled = false
			zone := physics.NewAABBFromCenter(vec3(o.Zone.Center), vec3(o.Zone.Size))
			rt.Puzzles.Register(puzzle.NewFetchObjective(o.ID, item, zone, rt.Bus, o.Label, o.DependsOn...))
		case "switches":
			var switches []*interaction.Interactable
			for _, name := range o.Switches {
				sw := propInteractable(built, name)
				if sw == nil {
					return fmt.Errorf("level: objective %q: prop %q has no interactable (mark it activatable)", o.ID, name)
				}
				sw.Enabled = false
				switches = append(switches, sw)
			}
			rt.Puzzles.Register(puzzle.NewSwitchObjective(o.ID, switches, rt.Bus, o.Label, o.DependsOn...))
		}
	}
	if err := rt.Puzzles.Init(); err != nil {
		return fmt.Errorf("level: objective graph: %w", err)
	}
	return nil
}

func propInteractable(built *Built, name string) *interaction.Interactable {
	obj := built.Props[name]
	if obj == nil {
		return nil
	}
	return engine.GetComponent[*interaction.Interactable](obj)
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

func lookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}
