package assets

import (
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AnimatedPending resolves to a model plus its animation clips.
type AnimatedPending struct {
	*Pending
	clips []rl.ModelAnimation
}

// Clips returns the loaded animation clips. Only valid once Done reports
// true; a placeholder model has no clips.
func (p *AnimatedPending) Clips() []rl.ModelAnimation { return p.clips }

// LoadAnimated requests a rigged model and its clips. Root motion is
// stripped from every clip before the future resolves, so translation tracks
// on the root bone cannot fight the runtime's own positioning of the object.
func (c *Cache) LoadAnimated(path string) *AnimatedPending {
	ap := &AnimatedPending{}
	p := c.Load(path)
	ap.Pending = p
	p.OnReady(func(model rl.Model, placeholder bool) {
		if placeholder {
			return
		}
		clips := rl.LoadModelAnimations(path)
		StripRootMotion(clips)
		ap.clips = clips
	})
	return ap
}

// StripRootMotion pins the root bone's translation in every frame of every
// clip to its first-frame value. The clip still plays all rotations; the
// character stays where the scene graph puts it.
func StripRootMotion(clips []rl.ModelAnimation) {
	for _, clip := range clips {
		if clip.BoneCount == 0 || clip.FrameCount == 0 || clip.FramePoses == nil {
			continue
		}
		// FramePoses is C memory: a per-frame array of per-bone transforms.
		frames := unsafe.Slice(clip.FramePoses, clip.FrameCount)
		first := unsafe.Slice(frames[0], clip.BoneCount)
		rootRest := first[0].Translation
		for f := range frames {
			bones := unsafe.Slice(frames[f], clip.BoneCount)
			bones[0].Translation = rootRest
		}
	}
}
