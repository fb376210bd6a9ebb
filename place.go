package cpn

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrPlaceFull          = errors.New("place is full")
	ErrInsufficientTokens = errors.New("insufficient tokens")
)

// Place holds a multiset of tokens partitioned by color. Color groups keep
// the order in which they first appeared, and tokens within a group keep
// insertion order, so the representative returned by First is deterministic
// for a given place state.
//
// All accessors lock the place. The lock makes single operations atomic; a
// check-then-fire sequence across several places is not atomic here and must
// be serialized by the driving loop (see Transition.Fire).
type Place struct {
	ID string `json:"_id"`
	// Name is the name of the place
	Name string `json:"name,omitempty"`
	// Bound is the maximum number of tokens that can be in this place.
	// Zero or negative means unbounded.
	Bound int `json:"bound,omitempty"`

	mu     sync.Mutex
	order  []TokenType
	groups map[TokenType][]*Token
}

// NewPlace creates a new place.
func NewPlace(name string, bound int) *Place {
	return &Place{
		ID:     ID(),
		Name:   name,
		Bound:  bound,
		groups: make(map[TokenType][]*Token),
	}
}

// TokenCount returns the total number of tokens in the place.
func (p *Place) TokenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, tt := range p.groups {
		n += len(tt)
	}
	return n
}

// TokenCountOf returns the number of tokens of the given color.
func (p *Place) TokenCountOf(tag TokenType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.groups[tag])
}

// Tokens returns a snapshot of the place's tokens grouped by color.
func (p *Place) Tokens() map[TokenType][]*Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[TokenType][]*Token, len(p.groups))
	for tag, tt := range p.groups {
		group := make([]*Token, len(tt))
		copy(group, tt)
		out[tag] = group
	}
	return out
}

// TokensOf returns a snapshot of the tokens of the given color.
func (p *Place) TokensOf(tag TokenType) []*Token {
	p.mu.Lock()
	defer p.mu.Unlock()
	tt := p.groups[tag]
	out := make([]*Token, len(tt))
	copy(out, tt)
	return out
}

// Add appends tokens to their color groups. Adding past the bound fails
// without adding anything.
func (p *Place) Add(tt ...*Token) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Bound > 0 {
		n := 0
		for _, group := range p.groups {
			n += len(group)
		}
		if n+len(tt) > p.Bound {
			return fmt.Errorf("%w: %s", ErrPlaceFull, p.Name)
		}
	}
	for _, tok := range tt {
		tag := tok.Color()
		if _, ok := p.groups[tag]; !ok {
			p.order = append(p.order, tag)
		}
		p.groups[tag] = append(p.groups[tag], tok)
	}
	return nil
}

// RemoveOf removes the n oldest tokens of the given color and returns them.
// If the group holds fewer than n tokens nothing is removed and
// ErrInsufficientTokens is returned.
func (p *Place) RemoveOf(tag TokenType, n int) ([]*Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	group := p.groups[tag]
	if len(group) < n {
		return nil, fmt.Errorf("%w: place %s has %d %s tokens, need %d", ErrInsufficientTokens, p.Name, len(group), tag, n)
	}
	taken := group[:n]
	rest := group[n:]
	if len(rest) == 0 {
		delete(p.groups, tag)
		for i, t := range p.order {
			if t == tag {
				p.order = append(p.order[:i], p.order[i+1:]...)
				break
			}
		}
	} else {
		p.groups[tag] = rest
	}
	out := make([]*Token, n)
	copy(out, taken)
	return out, nil
}

// removeByID unlinks a specific token, used to unwind a partial firing.
func (p *Place) removeByID(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for tag, group := range p.groups {
		for i, tok := range group {
			if tok.ID != id {
				continue
			}
			group = append(group[:i], group[i+1:]...)
			if len(group) == 0 {
				delete(p.groups, tag)
				for j, t := range p.order {
					if t == tag {
						p.order = append(p.order[:j], p.order[j+1:]...)
						break
					}
				}
			} else {
				p.groups[tag] = group
			}
			return
		}
	}
}

// First returns the representative token: the first-inserted token of the
// first-inserted color group. It does not remove the token. ok is false when
// the place is empty.
func (p *Place) First() (*Token, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.order) == 0 {
		return nil, false
	}
	group := p.groups[p.order[0]]
	return group[0], true
}

func (p *Place) Kind() Kind { return PlaceNode }

func (p *Place) Accept(v Visitor) error {
	return v.VisitPlace(p)
}

func (p *Place) String() string {
	return p.Name
}
