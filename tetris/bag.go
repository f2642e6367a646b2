package tetris

import "math/rand/v2"

// bag is the 7-bag randomizer: every run of seven draws starting at a bag
// boundary holds each shape once. The following bag is shuffled ahead of time
// so the queue preview can look past the end of the current one.
type bag struct {
	current []Shape
	next    []Shape
	index   int
	rand    *rand.Rand
}

func newBag(r *rand.Rand) *bag {
	b := &bag{rand: r}
	b.current = b.shuffled()
	b.next = b.shuffled()
	return b
}

func (b *bag) shuffled() []Shape {
	s := make([]Shape, len(Shapes))
	copy(s, Shapes)
	b.rand.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	return s
}

func (b *bag) draw() Shape {
	s := b.current[b.index]
	b.index = (b.index + 1) % len(b.current)
	if b.index == 0 {
		b.current = b.next
		b.next = b.shuffled()
	}
	return s
}

// preview returns the next n shapes without drawing them. n is capped at
// what the two bags hold.
func (b *bag) preview(n int) []Shape {
	out := make([]Shape, 0, n)
	out = append(out, b.current[b.index:]...)
	out = append(out, b.next...)
	if n < len(out) {
		out = out[:n]
	}
	return out
}
