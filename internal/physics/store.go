package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Handle identifies a static collider registered in a Store.
// Handles stay valid until RemoveStatic or Clear.
type Handle int

// Store holds the static collision volumes of the loaded level plus an
// optional infinite ground plane. Level geometry registers boxes at load time
// and the whole set is dropped in one call on unload.
type Store struct {
	statics map[Handle]AABB
	order   []Handle
	next    Handle

	groundY   float32
	hasGround bool
}

func NewStore() *Store {
	return &Store{
		statics: make(map[Handle]AABB),
	}
}

func (s *Store) AddStatic(box AABB) Handle {
	s.next++
	h := s.next
	s.statics[h] = box
	s.order = append(s.order, h)
	return h
}

// RemoveStatic drops a collider. Removing an unknown handle is a no-op.
func (s *Store) RemoveStatic(h Handle) {
	if _, ok := s.statics[h]; !ok {
		return
	}
	delete(s.statics, h)
	for i, other := range s.order {
		if other == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetGroundPlane defines an implicit infinite collider below y.
func (s *Store) SetGroundPlane(y float32) {
	s.groundY = y
	s.hasGround = true
}

func (s *Store) GroundPlane() (float32, bool) {
	return s.groundY, s.hasGround
}

// Clear removes all static colliders and the ground plane. Called on level
// unload.
func (s *Store) Clear() {
	s.statics = make(map[Handle]AABB)
	s.order = s.order[:0]
	s.hasGround = false
}

func (s *Store) Count() int {
	return len(s.statics)
}

// Overlaps reports whether the box touches any static collider.
func (s *Store) Overlaps(box AABB) bool {
	for _, h := range s.order {
		if box.Intersects(s.statics[h]) {
			return true
		}
	}
	return false
}

// skin keeps resolved boxes a hair away from surfaces so the next frame's
// overlap test doesn't re-trigger on floating point noise.
const skin = float32(0.0005)

// Resolve takes a moving box and its proposed displacement for this frame and
// returns a corrected displacement with penetration removed. The dominant
// motion axis is swept so the box cannot tunnel through a collider thinner
// than one frame's travel; remaining overlap at the end position is resolved
// with minimum-penetration push-out, and the ground plane clamps from below.
func (s *Store) Resolve(moving AABB, delta rl.Vector3) rl.Vector3 {
	delta = s.sweepDominantAxis(moving, delta)

	end := moving.Offset(delta)
	corrected := delta

	for _, h := range s.order {
		push := end.Resolve(s.statics[h])
		if push.X != 0 || push.Y != 0 || push.Z != 0 {
			end = end.Offset(push)
			corrected = rl.Vector3Add(corrected, push)
		}
	}

	if s.hasGround && end.Min.Y < s.groundY {
		lift := s.groundY - end.Min.Y
		end = end.Offset(rl.Vector3{Y: lift})
		corrected.Y += lift
	}

	return corrected
}

// sweepDominantAxis clamps the displacement along the axis with the largest
// motion so the box stops at the first collider face it would cross. Only the
// dominant axis is swept; the per-axis push-out in Resolve handles the rest.
func (s *Store) sweepDominantAxis(moving AABB, delta rl.Vector3) rl.Vector3 {
	ax, ay, az := abs(delta.X), abs(delta.Y), abs(delta.Z)
	if ax == 0 && ay == 0 && az == 0 {
		return delta
	}

	switch {
	case ax >= ay && ax >= az:
		delta.X = s.sweepAxis(moving, delta.X, axisX)
	case ay >= ax && ay >= az:
		delta.Y = s.sweepAxis(moving, delta.Y, axisY)
	default:
		delta.Z = s.sweepAxis(moving, delta.Z, axisZ)
	}
	return delta
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func axisMinMax(box AABB, a axis) (float32, float32) {
	switch a {
	case axisX:
		return box.Min.X, box.Max.X
	case axisY:
		return box.Min.Y, box.Max.Y
	default:
		return box.Min.Z, box.Max.Z
	}
}

// crossOverlap reports whether two boxes overlap on both axes other than a.
func crossOverlap(m, b AABB, a axis) bool {
	switch a {
	case axisX:
		return m.Min.Y <= b.Max.Y && m.Max.Y >= b.Min.Y && m.Min.Z <= b.Max.Z && m.Max.Z >= b.Min.Z
	case axisY:
		return m.Min.X <= b.Max.X && m.Max.X >= b.Min.X && m.Min.Z <= b.Max.Z && m.Max.Z >= b.Min.Z
	default:
		return m.Min.X <= b.Max.X && m.Max.X >= b.Min.X && m.Min.Y <= b.Max.Y && m.Max.Y >= b.Min.Y
	}
}

func (s *Store) sweepAxis(moving AABB, d float32, a axis) float32 {
	if d == 0 {
		return 0
	}
	mMin, mMax := axisMinMax(moving, a)

	for _, h := range s.order {
		b := s.statics[h]
		if !crossOverlap(moving, b, a) {
			continue
		}
		bMin, bMax := axisMinMax(b, a)

		if d > 0 && mMax <= bMin && mMax+d > bMin {
			gap := bMin - mMax - skin
			if gap < 0 {
				gap = 0
			}
			if gap < d {
				d = gap
			}
		}
		if d < 0 && mMin >= bMax && mMin+d < bMax {
			gap := bMax - mMin + skin
			if gap > 0 {
				gap = 0
			}
			if gap > d {
				d = gap
			}
		}
	}

	if s.hasGround && a == axisY && d < 0 && mMin >= s.groundY && mMin+d < s.groundY {
		d = s.groundY - mMin
	}
	return d
}
