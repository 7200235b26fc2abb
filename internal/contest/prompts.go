package contest

import (
	"math/rand"
	"slices"
	"strings"
)

// Prompts is a guild's ordered prompt list with a rotation cursor.
// The pool outlives individual contests.
type Prompts struct {
	list   []string
	cursor int
}

func NewPrompts() *Prompts {
	return &Prompts{}
}

// Add appends a phrase to the pool. Empty and duplicate phrases are rejected.
func (p *Prompts) Add(phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	if slices.Contains(p.list, phrase) {
		return false
	}

	p.list = append(p.list, phrase)
	return true
}

// Remove drops a phrase from the pool. The cursor shifts with the list so
// the next rotation doesn't skip a prompt.
func (p *Prompts) Remove(phrase string) bool {
	i := slices.Index(p.list, strings.TrimSpace(phrase))
	if i == -1 {
		return false
	}

	p.list = slices.Delete(p.list, i, i+1)
	if i < p.cursor {
		p.cursor--
	}
	if p.cursor >= len(p.list) {
		p.cursor = 0
	}
	return true
}

// Shuffle randomizes the prompt order and rewinds the cursor.
func (p *Prompts) Shuffle() {
	rand.Shuffle(len(p.list), func(i, j int) {
		p.list[i], p.list[j] = p.list[j], p.list[i]
	})
	p.cursor = 0
}

// NextIndex returns the cursor position and advances it with wraparound.
// Returns -1 and false on an empty pool.
func (p *Prompts) NextIndex() (int, bool) {
	if len(p.list) == 0 {
		return -1, false
	}

	i := p.cursor
	p.cursor = (p.cursor + 1) % len(p.list)
	return i, true
}

// Next returns the prompt at the cursor and advances it.
func (p *Prompts) Next() (string, bool) {
	i, ok := p.NextIndex()
	if !ok {
		return "", false
	}
	return p.list[i], true
}

// Current returns the prompt at the cursor without advancing it.
func (p *Prompts) Current() (string, bool) {
	if len(p.list) == 0 {
		return "", false
	}
	return p.list[p.cursor], true
}

// At returns the prompt at a fixed position, for contests that pinned
// their prompt when they started.
func (p *Prompts) At(i int) (string, bool) {
	if i < 0 || i >= len(p.list) {
		return "", false
	}
	return p.list[i], true
}

func (p *Prompts) Len() int {
	return len(p.list)
}

// List returns a copy of the phrases in rotation order.
func (p *Prompts) List() []string {
	return slices.Clone(p.list)
}
