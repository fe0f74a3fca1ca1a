// Package config provides YAML-based tuning for the runtime: locomotion
// feel, interaction reach, and frame pacing.
package config

// Config contains all runtime tuning parameters.
type Config struct {
	Locomotion  LocomotionConfig  `yaml:"locomotion"`
	Interaction InteractionConfig `yaml:"interaction"`
	Frame       FrameConfig       `yaml:"frame"`
}

// LocomotionConfig defines how the player rig moves.
type LocomotionConfig struct {
	MoveSpeed    float32 `yaml:"move_speed"`
	SnapAngle    float32 `yaml:"snap_angle"`
	SnapCooldown float32 `yaml:"snap_cooldown"`
	SnapDeadzone float32 `yaml:"snap_deadzone"`
	Gravity      float32 `yaml:"gravity"`
	JumpStrength float32 `yaml:"jump_strength"`
	EyeHeight    float32 `yaml:"eye_height"`
}

// InteractionConfig defines hover reach and the desktop carry offset.
type InteractionConfig struct {
	MaxDistance  float32 `yaml:"max_distance"`
	HoldDistance float32 `yaml:"hold_distance"`
}

// FrameConfig defines frame pacing. MaxDelta clamps a stalled frame's delta
// time so one hitch cannot produce an absurd displacement.
type FrameConfig struct {
	TargetFPS int32   `yaml:"target_fps"`
	MaxDelta  float32 `yaml:"max_delta"`
}

// Default returns the built-in tuning.
func Default() Config {
	return Config{
		Locomotion: LocomotionConfig{
			MoveSpeed:    3.0,
			SnapAngle:    30.0,
			SnapCooldown: 0.3,
			SnapDeadzone: 0.6,
			Gravity:      9.81,
			JumpStrength: 4.5,
			EyeHeight:    1.7,
		},
		Interaction: InteractionConfig{
			MaxDistance:  5.0,
			HoldDistance: 1.5,
		},
		Frame: FrameConfig{
			TargetFPS: 90,
			MaxDelta:  0.05,
		},
	}
}
