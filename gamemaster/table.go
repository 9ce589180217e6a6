package gamemaster

import (
	"sync"

	"github.com/google/uuid"

	"terra/game"
)

// feedSize bounds each table's update feed. When a reader falls behind, the
// oldest updates are dropped.
const feedSize = 64

// Update is one accepted change to a table's game. Action is nil when the
// change settled a power offer; Offer is nil otherwise. Declined marks an
// offer that was turned down rather than accepted.
type Update struct {
	Seq      int              `json:"seq"`
	Action   game.Action      `json:"action,omitempty"`
	Outcome  game.Outcome     `json:"outcome"`
	Offer    *game.PowerOffer `json:"offer,omitempty"`
	Declined bool             `json:"declined,omitempty"`
	View     game.View        `json:"view"`
}

// UpdateGetter returns the next pending update without blocking. It returns
// false when nothing is pending or the feed is closed.
type UpdateGetter func() (Update, bool)

// Table hosts one game. All access to the game goes through the table's lock.
type Table struct {
	id      uuid.UUID
	mu      sync.Mutex
	game    *game.Game
	updates chan Update
	seq     int
	closed  bool
}

func newTable(id uuid.UUID, g *game.Game) *Table {
	return &Table{id: id, game: g, updates: make(chan Update, feedSize)}
}

func (t *Table) ID() uuid.UUID {
	return t.id
}

// Play executes an action and publishes it to the feed. The feed is closed
// once the game has ended.
func (t *Table) Play(a game.Action) (game.Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out, err := t.game.Execute(a)
	if err != nil {
		return game.Outcome{}, err
	}
	t.publish(Update{Action: a, Outcome: out})
	if t.game.Phase() == game.EndedPhase {
		t.close()
	}
	return out, nil
}

func (t *Table) Accept(player, offer int) (game.PowerOffer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	settled, err := t.game.AcceptOffer(player, offer)
	if err != nil {
		return game.PowerOffer{}, err
	}
	t.publish(Update{Offer: &settled})
	return settled, nil
}

func (t *Table) Decline(player, offer int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	declined, err := t.game.DeclineOffer(player, offer)
	if err != nil {
		return err
	}
	t.publish(Update{Offer: &declined, Declined: true})
	return nil
}

func (t *Table) View() game.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View()
}

// Updates returns the table's non-blocking feed reader.
func (t *Table) Updates() UpdateGetter {
	return func() (Update, bool) {
		select {
		case u, ok := <-t.updates:
			if !ok {
				return Update{}, false
			}
			return u, true
		default:
			return Update{}, false
		}
	}
}

// publish must be called with t.mu held.
func (t *Table) publish(u Update) {
	if t.closed {
		return
	}
	t.seq++
	u.Seq = t.seq
	u.View = t.game.View()
	for {
		select {
		case t.updates <- u:
			return
		default:
			// drop the oldest update to make room
			select {
			case <-t.updates:
			default:
			}
		}
	}
}

// close must be called with t.mu held.
func (t *Table) close() {
	if !t.closed {
		t.closed = true
		close(t.updates)
	}
}
