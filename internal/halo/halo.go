// Package halo implements the halo-exchange protocol: for each of the four
// cardinal directions, post a receive, copy the outgoing interior edge,
// post a send, then wait for all four receives and all four sends before
// scattering the received lines back into the tile's border.
//
// Transport is real akita message passing (github.com/sarchlab/akita/v4),
// grounded on sarchlab/zeonica's cgra.MoveMsg / core.Core wiring: each
// Exchanger is a sim.TickingComponent with one sim.Port per direction,
// wired to its neighbour's matching port by an akita directconnection in
// package mesh. A direction with no neighbour (topology.NoRank) is treated
// as already satisfied: its halo cells were zeroed at allocation and are
// never written again.
package halo

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/mpol1t/glider/internal/tile"
	"github.com/mpol1t/glider/internal/topology"
)

// lineMsg carries one direction's copied edge for one generation.
type lineMsg struct {
	sim.MsgMeta
	Generation uint64
	Line       []byte
}

func (m *lineMsg) Meta() *sim.MsgMeta { return &m.MsgMeta }

// lineMsgBuilder builds a lineMsg. Src/Dst on akita v4's sim.MsgMeta are
// sim.RemotePort (port names), not sim.Port itself, so the builder takes
// the local port but resolves it (and the neighbour's port) to a
// sim.RemotePort via AsRemote() at Build time.
type lineMsgBuilder struct {
	src        sim.Port
	dst        sim.RemotePort
	generation uint64
	line       []byte
}

func (b lineMsgBuilder) WithSrc(p sim.Port) lineMsgBuilder       { b.src = p; return b }
func (b lineMsgBuilder) WithDst(d sim.RemotePort) lineMsgBuilder { b.dst = d; return b }
func (b lineMsgBuilder) WithGeneration(g uint64) lineMsgBuilder  { b.generation = g; return b }
func (b lineMsgBuilder) WithLine(line []byte) lineMsgBuilder     { b.line = line; return b }

func (b lineMsgBuilder) Build() *lineMsg {
	return &lineMsg{
		MsgMeta: sim.MsgMeta{
			ID:  sim.GetIDGenerator().Generate(),
			Src: b.src.AsRemote(),
			Dst: b.dst,
		},
		Generation: b.generation,
		Line:       b.line,
	}
}

// direction phase bits. a direction with no neighbour starts (and stays)
// satisfied in both phases.
type dirState struct {
	hasNeighbour bool
	sent         bool
	received     bool
	send         []byte
	recv         []byte
}

func (s *dirState) done() bool { return !s.hasNeighbour || (s.sent && s.received) }

// TransportError reports a failure posting a message onto an akita port.
type TransportError struct {
	Direction topology.Direction
	Err       *sim.SendError
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("halo: send in direction %s failed: %v", e.Direction, e.Err)
}

// Exchanger is the per-rank halo-exchange component. It owns one sim.Port
// per direction and the eight line buffers making up the exchange workspace.
type Exchanger struct {
	*sim.TickingComponent

	engine  sim.Engine
	ports   [4]sim.Port
	remotes [4]sim.RemotePort
	dirs    [4]dirState

	generation uint64
	active     bool
	tile       *tile.Tile

	// abort is shared by every Exchanger in a mesh (see ShareAbort): a
	// transport error on any one rank trips it, so every other rank's
	// Exchanger stops ticking too instead of waiting forever on a peer
	// that will never send. Defaults to a private flag so an Exchanger
	// used outside a mesh (e.g. in isolation in a test) still behaves.
	abort *bool

	err error
}

// NewExchanger builds an Exchanger for a descriptor's tile shape, named
// after the owning rank.
func NewExchanger(name string, engine sim.Engine, freq sim.Freq, desc topology.Descriptor) *Exchanger {
	e := &Exchanger{engine: engine, abort: new(bool)}
	e.TickingComponent = sim.NewTickingComponent(name, engine, freq, e)

	e.dirs[topology.Up] = dirState{hasNeighbour: desc.HasNeighbour(topology.Up), send: make([]byte, desc.W), recv: make([]byte, desc.W)}
	e.dirs[topology.Down] = dirState{hasNeighbour: desc.HasNeighbour(topology.Down), send: make([]byte, desc.W), recv: make([]byte, desc.W)}
	e.dirs[topology.Left] = dirState{hasNeighbour: desc.HasNeighbour(topology.Left), send: make([]byte, desc.H), recv: make([]byte, desc.H)}
	e.dirs[topology.Right] = dirState{hasNeighbour: desc.HasNeighbour(topology.Right), send: make([]byte, desc.H), recv: make([]byte, desc.H)}

	for _, dir := range topology.Order {
		e.ports[dir] = sim.NewLimitNumMsgPort(e, 4, name+"."+dir.String())
		e.AddPort(dir.String(), e.ports[dir])
	}

	return e
}

// Port returns the port used for direction dir, for wiring by package mesh.
func (e *Exchanger) Port(dir topology.Direction) sim.Port { return e.ports[dir] }

// SetRemote records the neighbour port reached in direction dir, as a
// sim.RemotePort, so trySend can address the message it posts. Set once by
// package mesh after it plugs a directconnection into both endpoints.
func (e *Exchanger) SetRemote(dir topology.Direction, remote sim.RemotePort) {
	e.remotes[dir] = remote
}

// ShareAbort replaces this Exchanger's abort flag with one shared across
// every rank of a mesh, so a transport error on one rank stops every
// other rank's exchange in the same generation rather than leaving them
// ticking forever for a message that will never arrive.
func (e *Exchanger) ShareAbort(flag *bool) {
	e.abort = flag
}

// Start begins exchanging t's border for the given generation and schedules
// this Exchanger's first tick immediately (the same TickNow-then-Run
// handoff api.Driver.Run uses to wake a device). The exchange then runs to
// completion over subsequent Tick calls as the caller drives the shared
// engine's Run().
func (e *Exchanger) Start(generation uint64, t *tile.Tile) {
	e.generation = generation
	e.tile = t
	e.active = true
	e.err = nil

	e.dirs[topology.Up] = resetDir(e.dirs[topology.Up])
	e.dirs[topology.Down] = resetDir(e.dirs[topology.Down])
	e.dirs[topology.Left] = resetDir(e.dirs[topology.Left])
	e.dirs[topology.Right] = resetDir(e.dirs[topology.Right])

	e.TickNow(e.engine)
}

func resetDir(d dirState) dirState {
	d.sent = false
	d.received = false
	return d
}

// Done reports whether the exchange started by Start has finished (all real
// neighbours both sent-to and received-from).
func (e *Exchanger) Done() bool {
	if !e.active {
		return true
	}
	for _, d := range e.dirs {
		if !d.done() {
			return false
		}
	}
	return true
}

// Err returns any transport error encountered during the current exchange.
func (e *Exchanger) Err() error { return e.err }

// Tick drives one cycle of the halo-exchange state machine: copy+send for
// directions not yet sent, poll+scatter for directions not yet received.
// It keeps reporting progress (true) for the whole duration of an active
// exchange so the engine keeps calling it until Done(); this is a
// deliberately simple always-poll component rather than one that waits on
// a wake-up hook. trySend no-ops once e.err is set, so a second failing
// direction in the same tick can never overwrite the first error; a send
// failure also trips the shared abort flag, and every other rank's
// Exchanger notices the tripped flag on its own next Tick and stops too,
// rather than waiting forever on a peer that will never send.
func (e *Exchanger) Tick(now sim.VTimeInSec) bool {
	if !e.active {
		return false
	}
	if *e.abort {
		e.active = false
		return false
	}

	e.trySend(topology.Up, e.tile.TopRow)
	e.trySend(topology.Down, e.tile.BottomRow)
	e.trySend(topology.Left, e.tile.LeftCol)
	e.trySend(topology.Right, e.tile.RightCol)
	if e.err != nil {
		*e.abort = true
		e.active = false
		return false
	}

	e.tryReceive(topology.Up)
	e.tryReceive(topology.Down)
	e.tryReceive(topology.Left)
	e.tryReceive(topology.Right)

	if e.Done() {
		e.scatter()
		e.active = false
	}

	return true
}

func (e *Exchanger) trySend(dir topology.Direction, copyEdge func([]byte)) {
	if e.err != nil {
		return
	}

	d := &e.dirs[dir]
	if !d.hasNeighbour || d.sent {
		return
	}

	copyEdge(d.send)

	msg := lineMsgBuilder{}.
		WithSrc(e.ports[dir]).
		WithDst(e.remotes[dir]).
		WithGeneration(e.generation).
		WithLine(append([]byte(nil), d.send...)).
		Build()

	if sendErr := e.ports[dir].Send(msg); sendErr != nil {
		e.err = &TransportError{Direction: dir, Err: sendErr}
		return
	}

	d.sent = true
}

func (e *Exchanger) tryReceive(dir topology.Direction) {
	d := &e.dirs[dir]
	if !d.hasNeighbour || d.received {
		return
	}

	msg := e.ports[dir].PeekIncoming()
	if msg == nil {
		return
	}

	line, ok := msg.(*lineMsg)
	if !ok || line.Generation != e.generation {
		return
	}

	e.ports[dir].RetrieveIncoming()
	copy(d.recv, line.Line)
	d.received = true
}

func (e *Exchanger) scatter() {
	e.tile.SetTopHalo(e.dirs[topology.Up].recv)
	e.tile.SetBottomHalo(e.dirs[topology.Down].recv)
	e.tile.SetLeftHalo(e.dirs[topology.Left].recv)
	e.tile.SetRightHalo(e.dirs[topology.Right].recv)
}
