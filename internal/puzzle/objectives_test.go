package puzzle

import (
	"testing"

	"dreamgate/internal/interaction"
	"dreamgate/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchObjectiveSolvesOnDropInZone(t *testing.T) {
	m := NewManager(nil)
	item := interaction.NewInteractable(interaction.CanGrab)
	item.Enabled = false

	zone := physics.NewAABBFromCenter(rl.Vector3{X: 3, Z: -3}, rl.Vector3{X: 2, Y: 2, Z: 2})
	obj := NewFetchObjective("fetch", item, zone, nil, "bring the gem home")
	m.Register(obj)
	require.NoError(t, m.Init())

	assert.True(t, item.Enabled, "activation enables the item")
	require.NotNil(t, item.OnRelease)

	// Dropped outside the zone: nothing happens
	item.OnRelease(interaction.SourceDesktop, rl.Vector3{X: 10})
	assert.Equal(t, Active, obj.State())

	item.OnRelease(interaction.SourceDesktop, rl.Vector3{X: 3, Z: -3})
	assert.Equal(t, Solved, obj.State())
	assert.Nil(t, item.OnRelease, "solved objective stops listening")
}

func TestSwitchObjectiveCountsEachOnce(t *testing.T) {
	m := NewManager(nil)
	sw1 := interaction.NewInteractable(interaction.CanActivate)
	sw2 := interaction.NewInteractable(interaction.CanActivate)

	obj := NewSwitchObjective("switches", []*interaction.Interactable{sw1, sw2}, nil, "press both plates")
	m.Register(obj)
	require.NoError(t, m.Init())

	require.NotNil(t, sw1.OnActivate)

	sw1.OnActivate(interaction.SourceLeftHand)
	sw1.OnActivate(interaction.SourceLeftHand) // repeat press counts once
	assert.Equal(t, Active, obj.State())

	sw2.OnActivate(interaction.SourceRightHand)
	assert.Equal(t, Solved, obj.State())
	assert.Nil(t, sw1.OnActivate)
	assert.Nil(t, sw2.OnActivate)
}
