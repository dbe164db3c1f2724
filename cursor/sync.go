package cursor

import "sync"

// SyncCursor serializes access to a cursor shared by several goroutines.
type SyncCursor[T any] struct {
	mu     sync.Mutex
	cursor Cursor[T]
}

// Synchronized wraps c so it can be pulled from several goroutines. An
// already synchronized cursor is returned as is.
func Synchronized[T any](c Cursor[T]) *SyncCursor[T] {
	if s, ok := c.(*SyncCursor[T]); ok {
		return s
	}
	return &SyncCursor[T]{cursor: c}
}

// HasNext reports whether an element remains.
func (s *SyncCursor[T]) HasNext() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.HasNext()
}

// Next returns the next element.
func (s *SyncCursor[T]) Next() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Next()
}

// TryNext checks for and takes the next element in one critical section, so
// two goroutines can never both see HasNext succeed and race for the same
// element. ok is false on exhaustion.
func (s *SyncCursor[T]) TryNext() (v T, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok, err = s.cursor.HasNext()
	if err != nil || !ok {
		return v, false, err
	}
	v, err = s.cursor.Next()
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}

// Close closes the wrapped cursor.
func (s *SyncCursor[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Close()
}
