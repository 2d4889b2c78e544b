package rule

// Phase is the planner's ordered lifecycle enum. Rules declare a phase;
// the driver runs every phase's rules in declaration order before moving
// to the next phase, and never runs a later phase's rules before an
// earlier one's.
type Phase int

const (
	PreBalance Phase = iota
	Balance
	PreResolveElements
	ResolveElements
	PostResolveElements
	PrePartitionElements
	PartitionElements
	PostPartitionElements
	PartitionSteps
	PostPartitionSteps
)

var phaseNames = [...]string{
	"pre-balance",
	"balance",
	"pre-resolve-elements",
	"resolve-elements",
	"post-resolve-elements",
	"pre-partition-elements",
	"partition-elements",
	"post-partition-elements",
	"partition-steps",
	"post-partition-steps",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown-phase"
	}
	return phaseNames[p]
}

// Phases lists every phase in declaration order.
func Phases() []Phase {
	out := make([]Phase, len(phaseNames))
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}
