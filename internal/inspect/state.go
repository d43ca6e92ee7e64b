package inspect

import "fmt"

// State is the lifecycle position of one pass.
type State uint8

const (
	StateIdle State = iota
	StateWalking
	StateAggregating
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalking:
		return "walking"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// advance moves to the next state. Passes never go back or skip a state.
func (p *pass) advance(to State) {
	if to != p.state+1 {
		panic(fmt.Sprintf("inspect: illegal transition %s -> %s", p.state, to))
	}
	p.state = to
}
