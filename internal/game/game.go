// Package game owns the frame driver: a fixed-order, single-threaded loop
// that runs input, locomotion, collision, interaction, and puzzle logic once
// per display refresh, then renders.
package game

import (
	"fmt"
	"path/filepath"

	"dreamgate/internal/assets"
	"dreamgate/internal/components"
	"dreamgate/internal/config"
	"dreamgate/internal/engine"
	"dreamgate/internal/events"
	"dreamgate/internal/interaction"
	"dreamgate/internal/level"
	"dreamgate/internal/physics"
	"dreamgate/internal/puzzle"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Game struct {
	cfg config.Config

	bus       *events.Bus
	scene     *engine.Scene
	colliders *physics.Store
	interact  *interaction.System
	puzzles   *puzzle.Manager
	cache     *assets.Cache
	hud       *HUD

	player *engine.GameObject
	rig    *components.RigController
	camera *components.Camera
	input  InputProvider

	current     *level.Built
	levelDir    string
	groundModel rl.Model

	// pendingLevel holds a portal transition requested mid-frame; the switch
	// happens at the frame boundary, before the next frame's input.
	pendingLevel string
}

func New(cfg config.Config) *Game {
	bus := events.NewBus()
	g := &Game{
		cfg:       cfg,
		bus:       bus,
		scene:     engine.NewScene("level"),
		colliders: physics.NewStore(),
		interact:  interaction.NewSystem(),
		puzzles:   puzzle.NewManager(bus),
		cache:     assets.NewCache(bus),
	}
	g.interact.MaxDistance = cfg.Interaction.MaxDistance
	g.interact.HoldDistance = cfg.Interaction.HoldDistance
	g.hud = NewHUD(bus)
	return g
}

// Run opens the window, loads the starting level, and drives the frame loop
// until the window closes.
func (g *Game) Run(levelPath string) error {
	rl.SetConfigFlags(rl.FlagWindowHighdpi)
	rl.InitWindow(1280, 720, "dreamgate")
	defer rl.CloseWindow()

	rl.SetTargetFPS(g.cfg.Frame.TargetFPS)
	rl.DisableCursor()

	groundMesh := rl.GenMeshPlane(120, 120, 1, 1)
	g.groundModel = rl.LoadModelFromMesh(groundMesh)
	defer rl.UnloadModel(g.groundModel)

	g.createPlayer()
	g.input = NewDesktopInput(g.rig)

	g.levelDir = filepath.Dir(levelPath)
	if err := g.loadLevel(levelPath); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		deltaTime := rl.GetFrameTime()
		if deltaTime > g.cfg.Frame.MaxDelta {
			deltaTime = g.cfg.Frame.MaxDelta
		}

		// Level switch is a synchronous barrier: it completes before this
		// frame's input is read.
		if g.pendingLevel != "" {
			target := filepath.Join(g.levelDir, g.pendingLevel)
			g.pendingLevel = ""
			if err := g.switchLevel(target); err != nil {
				return err
			}
		}

		g.Step(deltaTime)
		g.Draw()
	}
	g.unloadLevel()
	return nil
}

func (g *Game) createPlayer() {
	g.player = engine.NewGameObject("Player")

	g.rig = components.NewRigController(g.colliders)
	loco := g.cfg.Locomotion
	g.rig.MoveSpeed = loco.MoveSpeed
	g.rig.SnapAngle = loco.SnapAngle
	g.rig.SnapCooldown = loco.SnapCooldown
	g.rig.SnapDeadzone = loco.SnapDeadzone
	g.rig.Gravity = loco.Gravity
	g.rig.JumpStrength = loco.JumpStrength
	g.rig.EyeHeight = loco.EyeHeight
	g.player.AddComponent(g.rig)

	camNode := engine.NewGameObject("Camera")
	camNode.Transform.Position = rl.Vector3{Y: loco.EyeHeight}
	g.camera = components.NewCamera()
	camNode.AddComponent(g.camera)
	g.player.AddChild(camNode)

	// Hand anchor nodes: a tracked-input binding poses these; grabbed props
	// attach under them.
	for _, hand := range []struct {
		id   interaction.SourceID
		name string
		x    float32
	}{
		{interaction.SourceLeftHand, "LeftHand", -0.25},
		{interaction.SourceRightHand, "RightHand", 0.25},
	} {
		node := engine.NewGameObject(hand.name)
		node.Transform.Position = rl.Vector3{X: hand.x, Y: loco.EyeHeight - 0.4, Z: -0.4}
		g.player.AddChild(node)
		g.interact.SetSourceNode(hand.id, node)
	}

	g.player.Start()
	g.scene.AddGameObject(g.player)
}

// Step advances the simulation one frame in the fixed order: asset futures,
// input, locomotion (collision-corrected inside), interaction, puzzles,
// scene components, HUD.
func (g *Game) Step(deltaTime float32) {
	g.cache.Poll()

	in := g.input.Poll()

	g.rig.Step(in.Rig, deltaTime)

	for id, src := range in.Sources {
		g.interact.UpdateSource(id, src)
	}

	g.puzzles.Update(deltaTime)
	g.scene.Update(deltaTime)
	g.hud.Update(deltaTime)

	g.checkPortals()
}

func (g *Game) checkPortals() {
	if g.current == nil || g.pendingLevel != "" {
		return
	}
	body := physics.NewAABBFromCenter(
		rl.Vector3{
			X: g.player.Transform.Position.X,
			Y: g.player.Transform.Position.Y + g.rig.BodySize.Y/2,
			Z: g.player.Transform.Position.Z,
		},
		g.rig.BodySize,
	)
	for _, portal := range g.current.Portals {
		if body.Intersects(portal.Box) {
			log.Info("portal entered", "target", portal.Target)
			g.pendingLevel = portal.Target
			return
		}
	}
}

func (g *Game) loadLevel(path string) error {
	desc, err := level.LoadDescriptor(path)
	if err != nil {
		return err
	}
	built, err := level.Build(level.Runtime{
		Scene:     g.scene,
		Colliders: g.colliders,
		Interact:  g.interact,
		Puzzles:   g.puzzles,
		Assets:    g.cache,
		Bus:       g.bus,
	}, desc)
	if err != nil {
		return fmt.Errorf("load level %s: %w", path, err)
	}
	g.current = built

	g.player.Transform.Position = rl.Vector3{
		X: built.Spawn.Position[0],
		Y: built.Spawn.Position[1],
		Z: built.Spawn.Position[2],
	}
	g.player.Transform.Rotation.Y = built.Spawn.Yaw
	return nil
}

// unloadLevel is the synchronous teardown barrier: grabbed objects are
// force-released before the scene graph underneath them disappears, then
// colliders, objectives, and scene content go in bulk.
func (g *Game) unloadLevel() {
	g.interact.Clear()
	g.colliders.Clear()
	g.puzzles.Clear()

	for _, obj := range g.scene.GameObjects {
		if obj == g.player {
			continue
		}
		unloadRenderers(obj)
	}
	players := []*engine.GameObject{g.player}
	g.scene.GameObjects = players
	g.cache.Unload()
	g.hud.Reset()
}

func unloadRenderers(obj *engine.GameObject) {
	if r := engine.GetComponent[*components.ModelRenderer](obj); r != nil {
		r.Unload()
	}
	for _, child := range obj.Children {
		unloadRenderers(child)
	}
}

func (g *Game) switchLevel(path string) error {
	g.unloadLevel()
	return g.loadLevel(path)
}
