package config

import "sync"

// ChangeType represents the type of settings change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota

	// ChangeReload indicates the settings file was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a settings change event.
type Change struct {
	// Path is the dot-separated path to the changed setting. Empty for
	// reload events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous effective value (may be nil).
	OldValue any

	// NewValue is the new effective value (may be nil).
	NewValue any

	// Source identifies where the change came from ("runtime", "file").
	Source string
}

// Observer is called when a settings change occurs.
type Observer func(change Change)

// ObserverSubscription represents an active observer registration.
type ObserverSubscription struct {
	id       uint64
	notifier *notifier
}

// Unsubscribe removes this observer. Safe to call more than once.
func (s *ObserverSubscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// notifier manages settings change observers. Delivery is synchronous on
// the goroutine that made the change; observers run outside the lock.
type notifier struct {
	mu sync.RWMutex

	// globalObservers receive all changes.
	globalObservers map[uint64]Observer

	// pathObservers receive changes to a path or its children.
	pathObservers map[string]map[uint64]Observer

	nextID uint64
}

func newNotifier() *notifier {
	return &notifier{
		globalObservers: make(map[uint64]Observer),
		pathObservers:   make(map[string]map[uint64]Observer),
	}
}

// subscribe registers an observer for all changes.
func (n *notifier) subscribe(observer Observer) *ObserverSubscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &ObserverSubscription{id: id, notifier: n}
}

// subscribePath registers an observer for changes to a specific path.
// The observer also fires for child paths: subscribing to "preview"
// receives changes to "preview.scale".
func (n *notifier) subscribePath(path string, observer Observer) *ObserverSubscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.pathObservers[path] == nil {
		n.pathObservers[path] = make(map[uint64]Observer)
	}
	n.pathObservers[path][id] = observer

	return &ObserverSubscription{id: id, notifier: n}
}

// notify sends a change to all matching observers.
func (n *notifier) notify(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}

	if change.Path != "" {
		if pathObs, ok := n.pathObservers[change.Path]; ok {
			for _, obs := range pathObs {
				observers = append(observers, obs)
			}
		}
		for path, pathObs := range n.pathObservers {
			if isParentPath(path, change.Path) {
				for _, obs := range pathObs {
					observers = append(observers, obs)
				}
			}
		}
	} else {
		// Reload events go to every path observer.
		for _, pathObs := range n.pathObservers {
			for _, obs := range pathObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// unsubscribe removes an observer by ID.
func (n *notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for path, observers := range n.pathObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.pathObservers, path)
		}
	}
}

// isParentPath checks if parent is a parent path of child, so "preview"
// is a parent of "preview.scale".
func isParentPath(parent, child string) bool {
	if parent == "" || len(parent) >= len(child) {
		return false
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}
