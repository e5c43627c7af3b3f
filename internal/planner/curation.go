package planner

import (
	"fmt"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Summary is the outcome of a finished curation stream.
type Summary struct {
	LikedCount int
	Liked      []domain.Place
}

// CurationStream is the like/pass pass over a fixed, ordered candidate list.
// It moves strictly forward: one decision per candidate, in order, with no
// undo. The liked set only grows.
type CurationStream struct {
	candidates []domain.Place
	index      int
	liked      []domain.Place
}

// NewCurationStream starts a stream over a copy of candidates.
// An empty candidate list yields a stream that is terminal from the start.
func NewCurationStream(candidates []domain.Place) *CurationStream {
	return &CurationStream{
		candidates: append([]domain.Place(nil), candidates...),
		liked:      []domain.Place{},
	}
}

// Current returns the candidate awaiting a decision. ok is false once the
// stream is terminal.
func (c *CurationStream) Current() (p domain.Place, ok bool) {
	if c.IsTerminal() {
		return domain.Place{}, false
	}
	return c.candidates[c.index], true
}

// Decide records a decision on the current candidate and advances.
// On a terminal stream it returns an error wrapping domain.ErrConflict and
// changes nothing.
func (c *CurationStream) Decide(like bool) error {
	if c.IsTerminal() {
		return fmt.Errorf("%w: curation is already finished", domain.ErrConflict)
	}
	if like {
		c.liked = append(c.liked, c.candidates[c.index])
	}
	c.index++
	return nil
}

// IsTerminal reports whether every candidate has been decided.
func (c *CurationStream) IsTerminal() bool {
	return c.index == len(c.candidates)
}

// Index is the 0-based position of the current candidate.
func (c *CurationStream) Index() int { return c.index }

// Len is the number of candidates.
func (c *CurationStream) Len() int { return len(c.candidates) }

// Liked returns a copy of the liked places in decision order.
func (c *CurationStream) Liked() []domain.Place {
	return append([]domain.Place{}, c.liked...)
}

// Summary returns the liked set. Only valid once the stream is terminal;
// otherwise it returns an error wrapping domain.ErrConflict.
func (c *CurationStream) Summary() (Summary, error) {
	if !c.IsTerminal() {
		return Summary{}, fmt.Errorf("%w: %d of %d places still undecided",
			domain.ErrConflict, len(c.candidates)-c.index, len(c.candidates))
	}
	liked := c.Liked()
	return Summary{LikedCount: len(liked), Liked: liked}, nil
}
