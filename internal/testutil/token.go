// Package testutil holds deterministic stand-ins for the evaluator's
// production collaborators.
package testutil

import "sync"

// TokenSource hands out a predetermined sequence of evaluation tokens, so a
// test's results and catalog records are byte-identical across runs.
//
// Generate panics once the sequence is exhausted. That fail-fast catches a
// test evaluating more nodes than it declared tokens for.
type TokenSource struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewTokenSource creates a source returning the tokens in order. With no
// tokens it repeats "test-token" forever.
func NewTokenSource(tokens ...string) *TokenSource {
	return &TokenSource{tokens: tokens}
}

// Generate returns the next token. Implements eval.TokenGenerator.
func (s *TokenSource) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tokens) == 0 {
		return "test-token"
	}
	if s.idx >= len(s.tokens) {
		panic("TokenSource: all tokens exhausted")
	}
	token := s.tokens[s.idx]
	s.idx++
	return token
}
