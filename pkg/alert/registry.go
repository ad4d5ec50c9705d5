package alert

import (
	"container/list"
	"sync"
)

type member struct {
	id    string
	group string
}

// Registry tracks live alerts per group and enforces the group cap by
// evicting the oldest registered member. Order is registration order.
// A Registry is owned by whoever composes the renderer; there is no global instance.
type Registry struct {
	groups map[string]*list.List
	items  map[string]*list.Element
	mu     sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string]*list.List),
		items:  make(map[string]*list.Element),
	}
}

// TryAdmit registers id in groupID and returns the ids evicted to make room,
// oldest first. When groupID is empty or maxCount <= 0 nothing is registered
// or evicted. After it returns, the group holds at most maxCount members.
func (r *Registry) TryAdmit(id, groupID string, maxCount int) []string {
	if groupID == "" || maxCount <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; ok {
		return nil
	}

	l, ok := r.groups[groupID]
	if !ok {
		l = list.New()
		r.groups[groupID] = l
	}

	var evicted []string
	for l.Len() >= maxCount {
		front := l.Front()
		m := front.Value.(member)
		l.Remove(front)
		delete(r.items, m.id)
		evicted = append(evicted, m.id)
	}

	r.items[id] = l.PushBack(member{id: id, group: groupID})
	return evicted
}

// Release removes id from its group. It reports whether id was live.
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elem, ok := r.items[id]
	if !ok {
		return false
	}
	m := elem.Value.(member)
	l := r.groups[m.group]
	l.Remove(elem)
	delete(r.items, id)
	if l.Len() == 0 {
		delete(r.groups, m.group)
	}
	return true
}

// Len returns the number of live members of groupID.
func (r *Registry) Len(groupID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.groups[groupID]; ok {
		return l.Len()
	}
	return 0
}

// Members returns the live ids of groupID, oldest first.
func (r *Registry) Members(groupID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.groups[groupID]
	if !ok {
		return nil
	}
	out := make([]string, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(member).id)
	}
	return out
}

// Contains reports whether id is live in any group.
func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok
}

// Group returns the group of a live id.
func (r *Registry) Group(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if elem, ok := r.items[id]; ok {
		return elem.Value.(member).group, true
	}
	return "", false
}
