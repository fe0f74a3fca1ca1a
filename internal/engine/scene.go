package engine

type Scene struct {
	Name        string
	GameObjects []*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
}

func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			g.Scene = nil
			return
		}
	}
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	if uid == 0 {
		return nil
	}
	for _, g := range s.GameObjects {
		if g.UID == uid {
			return g
		}
		if found := findChildByUID(g, uid); found != nil {
			return found
		}
	}
	return nil
}

func findChildByUID(g *GameObject, uid uint64) *GameObject {
	for _, child := range g.Children {
		if child.UID == uid {
			return child
		}
		if found := findChildByUID(child, uid); found != nil {
			return found
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}

// Clear removes every game object. Used on level unload; callers are
// responsible for releasing anything still attached to objects outside the
// scene (grabbed props live under an input source node) before clearing.
func (s *Scene) Clear() {
	for _, g := range s.GameObjects {
		g.Scene = nil
	}
	s.GameObjects = s.GameObjects[:0]
}
