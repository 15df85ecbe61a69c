// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"sync"

	"github.com/ClementWalter/kakarot/params"
)

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{data: make([]Word, 0, 16)}
	},
}

// Stack is a LIFO of 256-bit words, bounded at params.StackLimit entries.
type Stack struct {
	data []Word
}

// NewStack returns an empty stack drawn from a pool, mirroring the
// teacher's allocation-avoidance pattern for the hottest object in the
// interpreter's inner loop.
func NewStack() *Stack {
	return stackPool.Get().(*Stack)
}

// ReturnStack releases s back to the pool. Callers must not use s again
// afterwards.
func ReturnStack(s *Stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}

// Push appends w to the top of the stack, failing with ErrStackOverflow if
// that would exceed params.StackLimit.
func (st *Stack) Push(w *Word) error {
	if uint64(len(st.data)) >= params.StackLimit {
		return ErrStackOverflow
	}
	st.data = append(st.data, *w)
	return nil
}

// PushUint128 pushes the word (x, 0): spec.md's push_uint128.
func (st *Stack) PushUint128(x uint64) error {
	return st.Push(WordFromUint64(x))
}

// Pop removes and returns the top word, failing with ErrStackUnderflow if
// the stack is empty.
func (st *Stack) Pop() (Word, error) {
	if len(st.data) == 0 {
		return Word{}, ErrStackUnderflow
	}
	n := len(st.data) - 1
	w := st.data[n]
	st.data = st.data[:n]
	return w, nil
}

// PopN removes and returns the top n words, in pop order (index 0 is the
// word that was on top), failing with ErrStackUnderflow if the stack holds
// fewer than n words.
func (st *Stack) PopN(n int) ([]Word, error) {
	if len(st.data) < n {
		return nil, ErrStackUnderflow
	}
	out := make([]Word, n)
	for i := 0; i < n; i++ {
		out[i] = st.data[len(st.data)-1-i]
	}
	st.data = st.data[:len(st.data)-n]
	return out, nil
}

// Peek returns the word i items from the top without removing it (i=0 is
// the top of the stack), failing with ErrStackUnderflow if the stack is
// too shallow.
func (st *Stack) Peek(i int) (*Word, error) {
	if i >= len(st.data) {
		return nil, ErrStackUnderflow
	}
	return &st.data[len(st.data)-1-i], nil
}

// Len returns the number of words currently on the stack.
func (st *Stack) Len() int { return len(st.data) }
