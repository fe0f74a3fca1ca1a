package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// LookProvider is implemented by components that control camera look direction.
// The interaction system uses it to aim the desktop hover ray.
type LookProvider interface {
	GetLookDirection() (x, y, z float32)
	GetEyeHeight() float32
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
