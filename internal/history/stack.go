// Package history implements a linear, branch-free undo history.
package history

// Stack is an ordered sequence of committed items plus a pointer to the
// current one. The pointer is -1 while nothing is committed; otherwise it
// addresses a valid index.
//
// Index 0 is the base state: it can be returned to but never undone past.
// Committing while the pointer is behind the newest item discards every
// item after the pointer first, so abandoned redo branches are gone for
// good.
//
// Stack is not safe for concurrent use.
type Stack[T any] struct {
	items []T
	idx   int
}

// New creates an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{idx: -1}
}

// Commit appends item after the current pointer and makes it current.
func (s *Stack[T]) Commit(item T) {
	if s.idx < len(s.items)-1 {
		// Release the abandoned tail for the collector before reslicing.
		clear(s.items[s.idx+1:])
		s.items = s.items[:s.idx+1]
	}
	s.items = append(s.items, item)
	s.idx = len(s.items) - 1
}

// Undo moves the pointer back one item and returns the new current item.
// It reports false and leaves the stack unchanged at the base state.
func (s *Stack[T]) Undo() (T, bool) {
	if !s.CanUndo() {
		var zero T
		return zero, false
	}
	s.idx--
	return s.items[s.idx], true
}

// Redo moves the pointer forward one item and returns the new current item.
// It reports false and leaves the stack unchanged at the newest item.
func (s *Stack[T]) Redo() (T, bool) {
	if !s.CanRedo() {
		var zero T
		return zero, false
	}
	s.idx++
	return s.items[s.idx], true
}

// Current returns the item the pointer addresses.
func (s *Stack[T]) Current() (T, bool) {
	if s.idx < 0 {
		var zero T
		return zero, false
	}
	return s.items[s.idx], true
}

// Reset discards every item.
func (s *Stack[T]) Reset() {
	clear(s.items)
	s.items = s.items[:0]
	s.idx = -1
}

// CanUndo reports whether Undo would move the pointer.
func (s *Stack[T]) CanUndo() bool { return s.idx > 0 }

// CanRedo reports whether Redo would move the pointer.
func (s *Stack[T]) CanRedo() bool { return s.idx < len(s.items)-1 }

// AtBase reports whether nothing beyond the base state is current.
func (s *Stack[T]) AtBase() bool { return s.idx <= 0 }

// Len returns the number of committed items, including the redo tail.
func (s *Stack[T]) Len() int { return len(s.items) }

// Index returns the pointer, -1 when empty.
func (s *Stack[T]) Index() int { return s.idx }
