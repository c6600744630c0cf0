package toast

import "sync"

// queueEntry is an immutable snapshot of a dispatch issued while no
// surface was mounted. Entries are consumed exactly once, in FIFO
// order, when a surface first registers.
type queueEntry struct {
	action  Action
	content any
	options Options
}

// pendingQueue buffers dispatch requests until a surface registers.
type pendingQueue struct {
	mu      sync.Mutex
	entries []queueEntry
}

// push appends an entry.
func (q *pendingQueue) push(e queueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, e)
}

// drain atomically empties the queue and returns the buffered entries
// in original order. Replay happens outside the lock so a reentrant
// dispatch during replay enqueues into a fresh queue instead of
// interleaving with the drain.
func (q *pendingQueue) drain() []queueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	entries := q.entries
	q.entries = nil
	return entries
}

// size returns the number of buffered entries.
func (q *pendingQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}
