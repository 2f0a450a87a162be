package matcher

// State is the resolution state of a Matcher.
type State uint8

const (
	Unmatched State = iota
	Matched         // matched, still accepting fall-through cases
	Broken          // matched and short-circuited
)

func (s State) String() string {
	switch s {
	case Unmatched:
		return "unmatched"
	case Matched:
		return "matched"
	case Broken:
		return "broken"
	}
	return "unknown"
}

type event uint8

const (
	onMatch event = iota
	onBreak
)

var transitions = [...][2]State{
	Unmatched: {onMatch: Matched, onBreak: Unmatched},
	Matched:   {onMatch: Matched, onBreak: Broken},
	Broken:    {onMatch: Broken, onBreak: Broken},
}

func (s State) next(ev event) State {
	return transitions[s][ev]
}
