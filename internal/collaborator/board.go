package collaborator

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/vango-dev/reactorctl/pkg/reactive"
)

// State is the JSON snapshot pushed to every connected dashboard client each
// time the board's effect observes a change.
type State struct {
	Tick   int    `json:"tick"`
	Parity string `json:"parity"`
	Clock  int    `json:"generation"`
}

// Board is the demo reactive graph the collaborator drives: a Tick signal, a
// Parity derived projecting it, and an effect that serializes both and
// fans the result out to every connected dashboard session. It plays the
// role the spec's out-of-scope router/DOM layer would in a full system —
// constructing sources, reading them inside an effect, writing to them from
// request handlers.
type Board struct {
	mu sync.Mutex

	tick   *reactive.Signal[int]
	parity *reactive.Derived[string]

	generation int
	dispose    func()

	log *slog.Logger

	subMu sync.Mutex
	subs  map[*Session]struct{}
}

// NewBoard constructs a board and starts its effect inside an owned Root
// scope. Close tears the scope down.
func NewBoard(log *slog.Logger) *Board {
	b := &Board{
		tick: reactive.NewSignal(0),
		log:  log,
		subs: make(map[*Session]struct{}),
	}
	b.parity = reactive.NewDerived(func() string {
		if b.tick.Get()%2 == 0 {
			return "even"
		}
		return "odd"
	})

	b.dispose = reactive.Root(func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			state := State{
				Tick:   b.tick.Get(),
				Parity: b.parity.Get(),
			}
			b.mu.Lock()
			b.generation++
			state.Clock = b.generation
			b.mu.Unlock()
			b.broadcast(state)
			return nil
		})
	})

	return b
}

// Close tears down the board's effect and releases all subscribers.
func (b *Board) Close() {
	b.dispose()
}

// Increment bumps the tick signal by delta and drains the scheduler
// synchronously, so the HTTP handler that called this can report the
// settled state in its response.
func (b *Board) Increment(delta int) State {
	b.tick.Update(func(n int) int { return n + delta })
	reactive.Flush()
	return b.Snapshot()
}

// Snapshot reads the board's current state without subscribing any reaction
// (the demo's HTTP GET handler calls this from outside an effect).
func (b *Board) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{
		Tick:   b.tick.Peek(),
		Parity: b.parity.Peek(),
		Clock:  b.generation,
	}
}

// Subscribe registers a session to receive State broadcasts.
func (b *Board) Subscribe(s *Session) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	b.subs[s] = struct{}{}
}

// Unsubscribe removes a session from the broadcast set.
func (b *Board) Unsubscribe(s *Session) {
	b.subMu.Lock()
	defer b.subMu.Unlock()
	delete(b.subs, s)
}

func (b *Board) broadcast(state State) {
	payload, err := json.Marshal(state)
	if err != nil {
		b.log.Error("collaborator: marshal board state", "error", err)
		return
	}

	b.subMu.Lock()
	targets := make([]*Session, 0, len(b.subs))
	for s := range b.subs {
		targets = append(targets, s)
	}
	b.subMu.Unlock()

	for _, s := range targets {
		s.Send(payload)
	}
}
