package alertsse

import "sync"

// Pages indexes live alerts by the Host that showed them. Hosts sharing a
// Pages deliver evictions and dismissals to the page the alert is on,
// whichever stream triggered them. A nil *Pages routes nothing.
type Pages struct {
	owners map[string]*Host
	mu     sync.Mutex
}

// NewPages creates an empty index.
func NewPages() *Pages {
	return &Pages{owners: make(map[string]*Host)}
}

// Len returns the number of indexed alerts.
func (p *Pages) Len() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owners)
}

func (p *Pages) claim(id string, h *Host) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.owners[id] = h
	p.mu.Unlock()
}

// owner returns the host showing id, if it is not h.
func (p *Pages) owner(id string, h *Host) (*Host, bool) {
	if p == nil {
		return nil, false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	o, ok := p.owners[id]
	if !ok || o == h {
		return nil, false
	}
	return o, true
}

func (p *Pages) release(id string, h *Host) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.owners[id] == h {
		delete(p.owners, id)
	}
	p.mu.Unlock()
}

func (p *Pages) releaseHost(h *Host) {
	if p == nil {
		return
	}
	p.mu.Lock()
	for id, o := range p.owners {
		if o == h {
			delete(p.owners, id)
		}
	}
	p.mu.Unlock()
}
