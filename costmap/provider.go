package costmap

import "sync"

// StaticProvider serves whichever grid was last set, in a fixed global frame. Writers may swap in
// a new grid while a planner holds the previous one; grids handed out are never mutated here.
type StaticProvider struct {
	mu          sync.RWMutex
	globalFrame string
	costmap     Costmap
}

// NewStaticProvider returns a provider serving cm in globalFrame.
func NewStaticProvider(globalFrame string, cm Costmap) *StaticProvider {
	return &StaticProvider{globalFrame: globalFrame, costmap: cm}
}

// Costmap returns the current costmap.
func (p *StaticProvider) Costmap() Costmap {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.costmap
}

// GlobalFrame returns the name of the frame the costmap is expressed in.
func (p *StaticProvider) GlobalFrame() string {
	return p.globalFrame
}

// Update replaces the served costmap.
func (p *StaticProvider) Update(cm Costmap) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.costmap = cm
}

var _ Provider = (*StaticProvider)(nil)
