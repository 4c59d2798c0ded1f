package sim

import (
	"github.com/Harsh-Sinha/n-body-simulation/internal/octree"
	"github.com/Harsh-Sinha/n-body-simulation/internal/parallel"
)

// integrate advances every particle by one velocity-Verlet (KDK) step and
// emits the new positions into frame iteration+1. Parallel over leaves; each
// particle is updated by a single worker and each frame slot is written
// through a unique id, so the result is deterministic across workers.
func (s *Simulator) integrate(tree *octree.Tree, iteration int) error {
	leaves := tree.Leaves
	dt := s.cfg.Dt

	errs := make([]error, s.cfg.Workers)
	parallel.ForWorker(s.cfg.Workers, len(leaves), func(w, start, end int) {
		for i := start; i < end; i++ {
			for _, p := range leaves[i].Particles {
				p.Pos = p.Pos.Add(p.Vel.Scale(dt)).Add(p.Acc.Scale(0.5 * dt * dt))

				next := p.Force.Scale(1 / p.Mass)
				p.Vel = p.Vel.Add(p.Acc.Add(next).Scale(0.5 * dt))
				p.Acc = next

				p.Force.X, p.Force.Y, p.Force.Z = 0, 0, 0

				if err := s.store.SetPosition(iteration+1, p.ID, p.Pos); err != nil {
					if errs[w] == nil {
						errs[w] = err
					}
					return
				}
			}
		}
	})

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
