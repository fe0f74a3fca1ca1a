package game

import (
	"dreamgate/internal/events"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	toastHold = float32(2.0) // seconds at full opacity
	toastFade = float32(1.5) // seconds fading out
)

type toast struct {
	text string
	hold float32
	fade *gween.Tween
	gone bool
}

// HUD renders objective state and notification toasts from the event bus.
type HUD struct {
	objective string
	complete  bool
	toasts    []*toast
}

func NewHUD(bus *events.Bus) *HUD {
	h := &HUD{}
	bus.Subscribe(events.Notification, func(e events.Event) {
		h.push(e.Message)
	})
	bus.Subscribe(events.AssetMissing, func(e events.Event) {
		h.push(e.Message)
	})
	bus.Subscribe(events.PuzzleActivated, func(e events.Event) {
		h.objective = e.PuzzleID
	})
	bus.Subscribe(events.PuzzleSolved, func(e events.Event) {
		h.push("objective complete: " + e.PuzzleID)
	})
	bus.Subscribe(events.GameComplete, func(e events.Event) {
		h.complete = true
	})
	return h
}

func (h *HUD) push(msg string) {
	if msg == "" {
		return
	}
	h.toasts = append(h.toasts, &toast{
		text: msg,
		hold: toastHold,
		fade: gween.New(1, 0, toastFade, ease.OutQuad),
	})
}

func (h *HUD) Update(deltaTime float32) {
	alive := h.toasts[:0]
	for _, t := range h.toasts {
		if t.hold > 0 {
			t.hold -= deltaTime
		} else {
			_, done := t.fade.Update(deltaTime)
			t.gone = done
		}
		if !t.gone {
			alive = append(alive, t)
		}
	}
	h.toasts = alive
}

func (h *HUD) Draw() {
	if h.objective != "" && !h.complete {
		gui.StatusBar(rl.Rectangle{X: 10, Y: 10, Width: 320, Height: 28}, "objective: "+h.objective)
	}
	if h.complete {
		gui.Panel(rl.Rectangle{X: float32(rl.GetScreenWidth())/2 - 160, Y: 80, Width: 320, Height: 48}, "complete")
		rl.DrawText("all objectives solved", int32(rl.GetScreenWidth())/2-110, 96, 20, rl.Gold)
	}

	y := float32(rl.GetScreenHeight()) - 40
	for i := len(h.toasts) - 1; i >= 0; i-- {
		t := h.toasts[i]
		alpha := float32(1)
		if t.hold <= 0 {
			alpha, _ = t.fade.Update(0)
		}
		rl.DrawText(t.text, 10, int32(y), 18, rl.Fade(rl.RayWhite, alpha))
		y -= 24
	}
}

// Reset drops transient state between levels. Bus subscriptions stay; the
// bus itself outlives level loads.
func (h *HUD) Reset() {
	h.objective = ""
	h.complete = false
	h.toasts = nil
}
