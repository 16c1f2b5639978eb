package player

import "github.com/desertthunder/tapedeck/internal/shared"

// Registry tracks the player instances living on one page.
type Registry interface {
	Register(p *Player) string
	Unregister(id string)
	Players() []*Player
}

// PageRegistry is the default [Registry].
//
// It is bookkeeping only: nothing consults it to stop one instance when another starts, so several players on a page
// can play at once. Like the players it holds, it must be used from a single goroutine.
type PageRegistry struct {
	players map[string]*Player
	order   []string
}

// NewPageRegistry creates an empty registry.
func NewPageRegistry() *PageRegistry {
	return &PageRegistry{players: make(map[string]*Player)}
}

// Register records p and returns its instance ID.
func (r *PageRegistry) Register(p *Player) string {
	id := shared.GenerateID()
	r.players[id] = p
	r.order = append(r.order, id)
	return id
}

// Unregister forgets the player with the given ID. Unknown IDs are ignored.
func (r *PageRegistry) Unregister(id string) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Players returns registered players in registration order.
func (r *PageRegistry) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}
