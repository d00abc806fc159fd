package automaton

import (
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/mpol1t/glider/internal/kernel"
	"github.com/mpol1t/glider/internal/mesh"
	"github.com/mpol1t/glider/internal/params"
	"github.com/mpol1t/glider/internal/rng"
	"github.com/mpol1t/glider/internal/sink"
	"github.com/mpol1t/glider/internal/tile"
)

// StopReason names why Run ended before exhausting max_steps. The zero
// value means it ran to completion.
type StopReason string

const (
	StopNone      StopReason = ""
	StopCollapse  StopReason = "collapse"
	StopExplosion StopReason = "explosion"
)

// exchangeFreq is the akita tick frequency every rank's Exchanger runs at.
// Its value is immaterial, since nothing in the model measures wall-clock
// rate; it only needs to be shared by every component sharing a
// directconnection.
const exchangeFreq sim.Freq = 1 * sim.GHz

// Simulation owns an entire process mesh's worth of Simulation State and
// drives the generation loop described by the Step Driver.
type Simulation struct {
	params params.Parameters
	logger sink.Logger
	dumper sink.Dumper

	engine sim.Engine
	mesh   *mesh.Mesh
	ranks  []*Rank

	lLow, lHigh int64
}

// New performs bring-up in dependency order: build the
// process mesh (derive every rank's topology and wire its exchanger), fan
// out seeds, allocate each rank's tile pair and Bernoulli-fill its
// interior, reduce the result to L0, and derive the early-stopping
// thresholds from it.
func New(p params.Parameters, logger sink.Logger, dumper sink.Dumper) (*Simulation, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	engine := sim.NewSerialEngine()

	monitor := monitoring.NewMonitor()
	monitor.RegisterEngine(engine)

	m, descs, err := mesh.Build(engine, exchangeFreq, p.Processes, p.Length)
	if err != nil {
		return nil, err
	}
	for _, ex := range m.Exchangers {
		monitor.RegisterComponent(ex)
	}

	seeds := rng.FanOut(p.Seed, p.Processes)

	ranks := make([]*Rank, p.Processes)
	var l0 int64
	for r, d := range descs {
		buffers := tile.NewPair(d.H, d.W)
		generator := rng.NewGenerator(seeds[r])
		live := rng.FillBernoulli(buffers.Current(), generator, p.Prob)

		ranks[r] = &Rank{
			Descriptor: d,
			Buffers:    buffers,
			Exchanger:  m.Exchangers[r],
			RNG:        generator,
		}

		l0 += int64(live)
		logger.WorkerPlacement(r, d.Row, d.Col, d.H, d.W)
	}

	logger.Configuration(p.Length, p.Prob, p.Seed, p.MaxSteps)

	return &Simulation{
		params: p,
		logger: logger,
		dumper: dumper,
		engine: engine,
		mesh:   m,
		ranks:  ranks,
		lLow:   l0 * 2 / 3,
		lHigh:  l0 * 3 / 2,
	}, nil
}

// Run executes the generation loop: halo exchange (skipped for a single
// rank), stencil sweep, buffer rotation, sum-reduce, controller-rank
// interval log, early-stopping check. It returns why it stopped and a step
// count: MaxSteps when it ran to completion, the index t of the generation
// whose population fired early stopping, or the index t of the generation
// whose halo exchange failed.
func (s *Simulation) Run() (int, StopReason, error) {
	for t := 0; t < s.params.MaxSteps; t++ {
		if s.params.Processes > 1 {
			if err := s.exchangeHalos(uint64(t)); err != nil {
				return t, StopNone, err
			}
		}

		var lt int64
		for _, rk := range s.ranks {
			lt += int64(kernel.Sweep(rk.Buffers.Current(), rk.Buffers.Next()))
		}
		for _, rk := range s.ranks {
			rk.Buffers.Swap()
		}

		if t%s.params.PrintInterval == 0 {
			s.logger.Interval(t, lt)
		}

		if s.params.EarlyStopping {
			if lt < s.lLow {
				s.logger.StopReason(t, string(StopCollapse))
				return t, StopCollapse, nil
			}
			if lt > s.lHigh {
				s.logger.StopReason(t, string(StopExplosion))
				return t, StopExplosion, nil
			}
		}
	}

	return s.params.MaxSteps, StopNone, nil
}

// exchangeHalos starts every rank's exchange for generation and pumps the
// shared engine until its event queue drains, which happens when every
// Exchanger has reported Done, or when a transport error has tripped the
// mesh's shared abort flag (see halo.Exchanger.Tick).
func (s *Simulation) exchangeHalos(generation uint64) error {
	for _, rk := range s.ranks {
		rk.Exchanger.Start(generation, rk.Buffers.Current())
	}

	s.engine.Run()

	for _, rk := range s.ranks {
		if err := rk.Exchanger.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close writes each rank's interior to a bitmap file, when requested, after
// the loop but before teardown. There is no further collective at shutdown;
// each rank writes its own file independently.
func (s *Simulation) Close() error {
	if !s.params.WriteToFile {
		return nil
	}

	for _, rk := range s.ranks {
		interior := rk.Buffers.Current().Interior()
		if err := s.dumper.Dump(rk.Descriptor.Row, rk.Descriptor.Col, interior, rk.Descriptor.H, rk.Descriptor.W); err != nil {
			return err
		}
	}
	return nil
}
