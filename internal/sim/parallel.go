package sim

import (
	"sync"

	"github.com/san-kum/spheremd/internal/forces"
	"github.com/san-kum/spheremd/internal/particle"
)

// Partitioned force evaluation. Each worker runs the enumeration over a
// disjoint half-open chunk of the full range, writing into a private
// clone of the arena and a private Stats. The clones' accelerations are
// merged into the shared arena afterward and the stats summed. Workers
// never touch shared mutable state while running.

// chunks splits [0, n) into at most workers half-open sub-ranges.
func chunks(n, workers int) [][2]int {
	if workers > n {
		workers = n
	}
	size := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func (s *Simulator) cellsParallel() (forces.Stats, error) {
	return s.fanOut(s.grid.NumCells(), func(buf particle.System, r [2]int, st *forces.Stats) error {
		return forces.Cells(buf, s.grid, r[0], r[1], s.cfg.Cutoff, s.cfg.Gamma, st)
	})
}

func (s *Simulator) bruteParallel() (forces.Stats, error) {
	return s.fanOut(len(s.sys), func(buf particle.System, r [2]int, st *forces.Stats) error {
		return forces.Brute(buf, r[0], r[1], s.cfg.Cutoff, s.cfg.Gamma, st)
	})
}

func (s *Simulator) fanOut(n int, eval func(particle.System, [2]int, *forces.Stats) error) (forces.Stats, error) {
	ranges := chunks(n, s.cfg.Workers)
	bufs := make([]particle.System, len(ranges))
	stats := make([]forces.Stats, len(ranges))
	errs := make([]error, len(ranges))

	var wg sync.WaitGroup
	for w := range ranges {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			buf := s.pool.GetCopy(s.sys) // accelerations are zero after Advance
			errs[w] = eval(buf, ranges[w], &stats[w])
			bufs[w] = buf
		}(w)
	}
	wg.Wait()

	var total forces.Stats
	var firstErr error
	for w := range ranges {
		if errs[w] != nil && firstErr == nil {
			firstErr = errs[w]
		}
		if errs[w] == nil {
			s.sys.AccumulateAccel(bufs[w])
			total.Add(stats[w])
		}
		s.pool.Put(bufs[w])
	}
	return total, firstErr
}
