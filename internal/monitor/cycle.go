package monitor

import "sync"

// Entry is a copy of one Cycle slot.
type Entry struct {
	URL    string
	Status Status
}

// Cycle is an insertion-ordered URL -> Status map with a round-robin cursor.
// One monitor goroutine advances it while other goroutines insert and remove
// entries. Every method holds the lock for its own duration only.
type Cycle struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Status
	// next is the index Next will return, modulo len(order).
	next int
}

// NewCycle returns a Cycle holding entries in the given order.
func NewCycle(entries ...Entry) *Cycle {
	c := &Cycle{entries: make(map[string]Status, len(entries))}
	for _, e := range entries {
		c.insertLocked(e.URL, e.Status)
	}
	return c
}

// Next returns the entry under the cursor and moves the cursor one step,
// wrapping at the end. ok is false when the Cycle is empty.
func (c *Cycle) Next() (url string, status Status, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.order) == 0 {
		return "", Idle, false
	}
	i := c.next % len(c.order)
	c.next = i + 1
	url = c.order[i]
	return url, c.entries[url], true
}

// Insert adds url at the end of the round or overwrites its status in place.
func (c *Cycle) Insert(url string, status Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(url, status)
}

func (c *Cycle) insertLocked(url string, status Status) {
	if _, ok := c.entries[url]; !ok {
		c.order = append(c.order, url)
	}
	c.entries[url] = status
}

// Upsert applies modify to an existing entry, or inserts init() when url is
// absent. The decision and the write happen under one lock.
func (c *Cycle) Upsert(url string, modify func(*Status), init func() Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.entries[url]; ok {
		modify(&s)
		c.entries[url] = s
		return
	}
	c.insertLocked(url, init())
}

// Modify applies f to an existing entry. It never inserts, so a write racing
// a Remove is dropped. Reports whether url was present.
func (c *Cycle) Modify(url string, f func(*Status)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[url]
	if !ok {
		return false
	}
	f(&s)
	c.entries[url] = s
	return true
}

// CompareAndSwap sets url to `to` only if it is present and currently `from`.
func (c *Cycle) CompareAndSwap(url string, from, to Status) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.entries[url]; !ok || s != from {
		return false
	}
	c.entries[url] = to
	return true
}

// Remove deletes url and returns its last status. Entries after it keep their
// turn: the cursor is shifted back when the removed slot was already visited.
func (c *Cycle) Remove(url string) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.entries[url]
	if !ok {
		return Idle, false
	}
	delete(c.entries, url)

	for i, u := range c.order {
		if u != url {
			continue
		}
		c.order = append(c.order[:i], c.order[i+1:]...)
		if n := len(c.order); n == 0 {
			c.next = 0
		} else {
			cur := c.next % (n + 1)
			if i < cur {
				cur--
			}
			c.next = cur
		}
		break
	}
	return s, true
}

// Get returns the status of url.
func (c *Cycle) Get(url string) (Status, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.entries[url]
	return s, ok
}

// Len returns the number of entries.
func (c *Cycle) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Snapshot copies all entries in insertion order.
func (c *Cycle) Snapshot() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.order))
	for i, u := range c.order {
		out[i] = Entry{URL: u, Status: c.entries[u]}
	}
	return out
}
