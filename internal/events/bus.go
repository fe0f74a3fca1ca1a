// Package events is the fire-and-forget notification channel between the
// runtime core and whoever renders feedback (HUD, logs, tests). Kinds are
// enumerated so payload mismatches fail at compile time instead of at
// runtime like a stringly-typed topic map would.
package events

type Kind int

const (
	Notification Kind = iota
	PuzzleActivated
	PuzzleSolved
	GameComplete
	LevelLoaded
	AssetMissing
)

func (k Kind) String() string {
	switch k {
	case Notification:
		return "notification"
	case PuzzleActivated:
		return "puzzle:activated"
	case PuzzleSolved:
		return "puzzle:solved"
	case GameComplete:
		return "game:complete"
	case LevelLoaded:
		return "level:loaded"
	case AssetMissing:
		return "asset:missing"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind    Kind
	Message string
	// PuzzleID is set for PuzzleActivated/PuzzleSolved.
	PuzzleID string
	// Path is set for AssetMissing and LevelLoaded.
	Path string
}

// Bus dispatches events synchronously inside the frame. The frame loop is
// single-threaded, so there is no locking; handlers must not publish
// re-entrantly into a kind they subscribe to.
type Bus struct {
	handlers map[Kind][]func(Event)
	all      []func(Event)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Kind][]func(Event))}
}

// Subscribe registers a handler for one event kind.
func (b *Bus) Subscribe(k Kind, fn func(Event)) {
	if fn == nil {
		return
	}
	b.handlers[k] = append(b.handlers[k], fn)
}

// SubscribeAll registers a handler for every event kind.
func (b *Bus) SubscribeAll(fn func(Event)) {
	if fn == nil {
		return
	}
	b.all = append(b.all, fn)
}

// Publish delivers the event to all matching handlers. No acknowledgement,
// no buffering: a bus with no subscribers drops events silently.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.handlers[e.Kind] {
		fn(e)
	}
	for _, fn := range b.all {
		fn(e)
	}
}

// Reset drops all handlers. Used between levels and between tests.
func (b *Bus) Reset() {
	b.handlers = make(map[Kind][]func(Event))
	b.all = nil
}
