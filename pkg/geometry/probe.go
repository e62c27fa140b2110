package geometry

import (
	"sync"

	"github.com/taigrr/prism/pkg/math3d"
)

// probe remembers the most recent local ray handed to a test shape. Renders
// intersect from several goroutines, so access is locked.
type probe struct {
	mu  sync.Mutex
	ray math3d.Ray
	set bool
}

func (p *probe) record(r math3d.Ray) {
	p.mu.Lock()
	p.ray, p.set = r, true
	p.mu.Unlock()
}

func (p *probe) saved() (math3d.Ray, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ray, p.set
}
