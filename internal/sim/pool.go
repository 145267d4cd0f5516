package sim

import (
	"sync"

	"github.com/san-kum/spheremd/internal/particle"
)

// SystemPool recycles worker arenas so the parallel force pass does not
// allocate a full particle clone every step.
type SystemPool struct {
	pool sync.Pool
	size int
}

func NewSystemPool(n int) *SystemPool {
	return &SystemPool{
		size: n,
		pool: sync.Pool{
			New: func() interface{} {
				return particle.New(n)
			},
		},
	}
}

func (p *SystemPool) Get() particle.System {
	return p.pool.Get().(particle.System)
}

func (p *SystemPool) Put(sys particle.System) {
	if len(sys) == p.size {
		p.pool.Put(sys)
	}
}

// GetCopy returns a pooled arena holding a copy of src.
func (p *SystemPool) GetCopy(src particle.System) particle.System {
	dst := p.Get()
	src.CopyInto(dst)
	return dst
}
