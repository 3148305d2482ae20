package postcard

// TargetKind classifies what a destructive action would remove.
type TargetKind int

const (
	TargetPost TargetKind = iota
	TargetComment
)

func (k TargetKind) String() string {
	if k == TargetComment {
		return "comment"
	}
	return "post"
}

// GateState is the confirmation gate's position.
type GateState int

const (
	GateIdle GateState = iota
	GateAwaiting
	GateExecuting
)

// Gate guards destructive actions behind an explicit confirmation step. A
// widget holds one gate, so at most one confirmation is outstanding at a
// time; a second request while one is awaiting replaces the prior target.
type Gate struct {
	state    GateState
	kind     TargetKind
	targetID string
}

// Request captures a deletion target and moves to awaiting-confirmation.
// While a request is executing it is too late to retarget; the call is
// ignored.
func (g *Gate) Request(kind TargetKind, targetID string) {
	if g.state == GateExecuting {
		return
	}
	g.state = GateAwaiting
	g.kind = kind
	g.targetID = targetID
}

// Cancel abandons an awaiting request without issuing anything.
func (g *Gate) Cancel() {
	if g.state == GateAwaiting {
		g.state = GateIdle
		g.targetID = ""
	}
}

// Confirm moves awaiting → executing and hands back the captured target.
// ok is false when no confirmation was pending.
func (g *Gate) Confirm() (kind TargetKind, targetID string, ok bool) {
	if g.state != GateAwaiting {
		return 0, "", false
	}
	g.state = GateExecuting
	return g.kind, g.targetID, true
}

// Finish returns the gate to idle once the destructive request completed,
// successfully or not.
func (g *Gate) Finish() {
	g.state = GateIdle
	g.targetID = ""
}

func (g *Gate) State() GateState { return g.state }

// Awaiting reports whether the gate is waiting on the user's decision.
func (g *Gate) Awaiting() bool { return g.state == GateAwaiting }

// Target returns the currently captured target, valid while non-idle.
func (g *Gate) Target() (TargetKind, string) { return g.kind, g.targetID }
