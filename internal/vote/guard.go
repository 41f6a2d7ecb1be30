package vote

import (
	"strings"
	"sync"
)

// InFlight tracks voters with a vote in progress. One InFlight may be
// shared by several orchestrators acting for the same voters.
type InFlight struct {
	mu     sync.Mutex
	voters map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{voters: make(map[string]struct{})}
}

// Acquire marks voter busy. It returns false when the voter already is;
// otherwise release must be called once the vote is over.
func (g *InFlight) Acquire(voter string) (release func(), ok bool) {
	key := strings.ToLower(voter)
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.voters[key]; busy {
		return nil, false
	}
	g.voters[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.voters, key)
			g.mu.Unlock()
		})
	}, true
}

func (g *InFlight) Busy(voter string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.voters[strings.ToLower(voter)]
	return busy
}
