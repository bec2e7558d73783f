// Package sentence provides the fixed pool of target sentences.
package sentence

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var defaultSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Never underestimate the power of a good book.",
	"The early bird catches the worm, but the second mouse gets the cheese.",
	"Innovation distinguishes between a leader and a follower.",
	"The only way to do great work is to love what you do.",
	"Programming is like building a puzzle, one line of code at a time.",
	"The sun always shines brightest after the rain.",
	"Life is what happens when you're busy making other plans.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"The journey of a thousand miles begins with a single step.",
}

// Pool is an immutable, non-empty set of sentences.
type Pool struct {
	sentences []string

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures a Pool.
type Option func(*Pool)

// WithSeed makes draws reproducible.
func WithSeed(seed int64) Option {
	return func(p *Pool) {
		p.rnd = rand.New(rand.NewSource(seed))
	}
}

// New returns a Pool over a copy of sentences.
func New(sentences []string, opts ...Option) (*Pool, error) {
	if len(sentences) == 0 {
		return nil, fmt.Errorf("sentence pool is empty")
	}
	p := &Pool{
		sentences: append([]string(nil), sentences...),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Default returns the built-in pool.
func Default(opts ...Option) *Pool {
	p, err := New(defaultSentences, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Pick returns a sentence drawn uniformly at random.
func (p *Pool) Pick() string {
	p.mu.Lock()
	idx := p.rnd.Intn(len(p.sentences))
	p.mu.Unlock()
	return p.sentences[idx]
}

// Len returns the number of sentences.
func (p *Pool) Len() int {
	return len(p.sentences)
}

// Sentences returns a copy of the pool in its fixed order.
func (p *Pool) Sentences() []string {
	return append([]string(nil), p.sentences...)
}
