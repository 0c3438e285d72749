package host

import (
	"slices"
	"sync"
)

// Dispatcher fans notifications out to every registered observer, in
// registration order.
type Dispatcher struct {
	lock      sync.Mutex
	nextId    int
	observers []dispatchEntry
}

type dispatchEntry struct {
	id       int
	observer Observer
}

var _ Observer = (*Dispatcher)(nil)

// Register adds an observer, returning the id to unregister it with.
func (dp *Dispatcher) Register(observer Observer) (id int) {
	dp.lock.Lock()
	defer dp.lock.Unlock()

	dp.nextId++
	id = dp.nextId
	dp.observers = append(dp.observers, dispatchEntry{id: id, observer: observer})

	return
}

// Unregister removes a previously registered observer.
func (dp *Dispatcher) Unregister(id int) (ok bool) {
	dp.lock.Lock()
	defer dp.lock.Unlock()

	n := slices.IndexFunc(dp.observers, func(entry dispatchEntry) bool { return entry.id == id })
	if n < 0 {
		return
	}

	dp.observers = slices.Delete(dp.observers, n, n+1)
	return true
}

// Len returns the number of registered observers.
func (dp *Dispatcher) Len() int {
	dp.lock.Lock()
	defer dp.lock.Unlock()

	return len(dp.observers)
}

// Update forwards a copy of the snapshot to each observer.
func (dp *Dispatcher) Update(registers []uint32) {
	dp.lock.Lock()
	observers := slices.Clone(dp.observers)
	dp.lock.Unlock()

	for _, entry := range observers {
		entry.observer.Update(slices.Clone(registers))
	}
}
