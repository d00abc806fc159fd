// Package mesh wires one halo.Exchanger per rank into the Cartesian process
// grid described by package topology, using akita direct connections,
// grounded on sarchlab/zeonica/config.DeviceBuilder.connectTiles, which
// wires CGRA tile ports the same way.
package mesh

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/akita/v4/sim/directconnection"

	"github.com/mpol1t/glider/internal/halo"
	"github.com/mpol1t/glider/internal/topology"
)

// Mesh owns every rank's Exchanger and the connections between them.
type Mesh struct {
	Exchangers []*halo.Exchanger
	conns      []*directconnection.Comp
}

// Build constructs descriptors for every rank of an n x n lattice over p
// processes and wires their exchangers together. Exactly one connection is
// created per undirected link (each connection is plugged into both
// endpoints' matching ports), mirroring connectTilePorts in config.go.
func Build(engine sim.Engine, freq sim.Freq, p, n int) (*Mesh, []topology.Descriptor, error) {
	descs := make([]topology.Descriptor, p)
	for r := 0; r < p; r++ {
		d, err := topology.NewDescriptor(r, p, n)
		if err != nil {
			return nil, nil, err
		}
		descs[r] = d
	}

	m := &Mesh{Exchangers: make([]*halo.Exchanger, p)}
	abort := new(bool)
	for r, d := range descs {
		m.Exchangers[r] = halo.NewExchanger(fmt.Sprintf("Rank[%d]", r), engine, freq, d)
		m.Exchangers[r].ShareAbort(abort)
	}

	if p == 1 {
		return m, descs, nil
	}

	// Each physical link is wired exactly once. A link is identified by its
	// two (rank, direction) endpoints rather than by rank pair alone: with a
	// 2-wide periodic column wrap, two adjacent ranks are joined by two
	// distinct links (Left and Right), not one.
	connected := make(map[string]bool)
	for r, d := range descs {
		m.connectIfNew(engine, freq, connected, r, d, topology.Up)
		m.connectIfNew(engine, freq, connected, r, d, topology.Down)
		m.connectIfNew(engine, freq, connected, r, d, topology.Left)
		m.connectIfNew(engine, freq, connected, r, d, topology.Right)
	}

	return m, descs, nil
}

// opposite returns the direction that, from the neighbour's perspective,
// points back at the rank that issued dir.
func opposite(dir topology.Direction) topology.Direction {
	switch dir {
	case topology.Up:
		return topology.Down
	case topology.Down:
		return topology.Up
	case topology.Left:
		return topology.Right
	case topology.Right:
		return topology.Left
	default:
		panic("mesh: unknown direction")
	}
}

func (m *Mesh) connectIfNew(
	engine sim.Engine,
	freq sim.Freq,
	connected map[string]bool,
	rank int,
	d topology.Descriptor,
	dir topology.Direction,
) {
	neighbour := d.Neighbour(dir)
	if neighbour == topology.NoRank {
		return
	}

	here := fmt.Sprintf("%d:%s", rank, dir)
	there := fmt.Sprintf("%d:%s", neighbour, opposite(dir))
	key := here + "|" + there
	if there < here {
		key = there + "|" + here
	}
	if connected[key] {
		return
	}
	connected[key] = true

	srcPort := m.Exchangers[rank].Port(dir)
	dstPort := m.Exchangers[neighbour].Port(opposite(dir))

	m.Exchangers[rank].SetRemote(dir, dstPort.AsRemote())
	m.Exchangers[neighbour].SetRemote(opposite(dir), srcPort.AsRemote())

	conn := directconnection.MakeBuilder().
		WithEngine(engine).
		WithFreq(freq).
		Build(fmt.Sprintf("Rank[%d].%s<->Rank[%d].%s", rank, dir, neighbour, opposite(dir)))

	conn.PlugIn(srcPort)
	conn.PlugIn(dstPort)

	m.conns = append(m.conns, conn)
}
