package ecs

import "iter"

// Query is a View that snapshots its matches once per frame. The Scheduler
// calls Execute before the owning system runs, so entities spawned through
// Commands during a frame show up on the next one.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cached     []T
	cacheValid bool
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage and drops any cached results.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the per-frame snapshot.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.lastArchetypeCount {
		q.cachedArchetypes = q.cachedArchetypes[:0]
		for _, archetype := range q.storage.order {
			if q.view.matchesArchetype(archetype) {
				q.cachedArchetypes = append(q.cachedArchetypes, archetype)
			}
		}
		q.lastArchetypeCount = n
	}

	q.cached = q.cached[:0]
	for _, archetype := range q.cachedArchetypes {
		for item := range q.view.iterArchetype(archetype) {
			q.cached = append(q.cached, item)
		}
	}
	q.cacheValid = true
}

// Iter yields this frame's matches.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for _, item := range q.cached {
			if !yield(item) {
				return
			}
		}
	}
}

// First returns the first match, for queries that expect exactly one entity.
func (q *Query[T]) First() (T, bool) {
	if !q.cacheValid {
		panic("Query.First() called before Query.Execute()")
	}

	if len(q.cached) == 0 {
		var zero T
		return zero, false
	}
	return q.cached[0], true
}

// Len returns the number of matches in this frame's snapshot.
func (q *Query[T]) Len() int {
	return len(q.cached)
}
