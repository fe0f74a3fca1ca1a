package components

import (
	"dreamgate/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Animator plays skeletal clips on a rigged model. Clips are expected to
// have root motion already stripped, so playback never moves the object.
type Animator struct {
	engine.BaseComponent
	Model rl.Model
	Clips []rl.ModelAnimation
	Clip  int     // index into Clips
	FPS   float32 // clip sampling rate

	frame float32
}

func NewAnimator(model rl.Model, clips []rl.ModelAnimation) *Animator {
	return &Animator{
		Model: model,
		Clips: clips,
		FPS:   30,
	}
}

func (a *Animator) Update(deltaTime float32) {
	if len(a.Clips) == 0 || a.Clip >= len(a.Clips) {
		return
	}
	clip := a.Clips[a.Clip]
	if clip.FrameCount == 0 {
		return
	}
	a.frame += a.FPS * deltaTime
	for a.frame >= float32(clip.FrameCount) {
		a.frame -= float32(clip.FrameCount)
	}
	rl.UpdateModelAnimation(a.Model, clip, int32(a.frame))
}
