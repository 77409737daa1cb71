package balancer

import (
	"github.com/rowanhart/cohortly/pkg/core/model"
)

// Input contains everything the balancer needs for one run
type Input struct {
	// Roster is the full list of trainees to place
	Roster []model.Trainee

	// LearningStyles holds at most one assessment per trainee.
	// Trainees absent from this list are treated as unassessed.
	LearningStyles []model.LearningStyle

	// Avoidances are pairwise preferences. Only entries with kind "avoid"
	// are consumed; other kinds are ignored by this algorithm.
	Avoidances []model.AvoidancePreference

	// NumGroups is the number of groups to produce. If it exceeds the
	// roster size some groups legitimately end up empty.
	NumGroups int
}

// GroupAssignment is one output group. Member order carries no meaning.
type GroupAssignment struct {
	GroupIndex int
	TraineeIDs []string
}

// Stats summarises a finished assignment for diagnostics
type Stats struct {
	// TotalTrainees is the roster size
	TotalTrainees int

	// RequestedGroups is the number of groups that were asked for
	RequestedGroups int

	// GroupSizes holds the final size of each group, by group index
	GroupSizes []int

	// SizeStdDev is the population standard deviation of group sizes.
	// Zero for a perfectly even split.
	SizeStdDev float64

	// AgencyTotals counts trainees per home agency across the whole roster
	AgencyTotals map[string]int

	// AgencyDistribution holds, per group, the count of members from each agency
	AgencyDistribution []map[string]int

	// StyleDistribution holds, per group, the count of members per learning
	// style, including an "unassessed" bucket
	StyleDistribution []map[string]int

	// AvoidanceConflicts is the number of unresolved avoidance conflicts
	// in the final assignment (after warning deduplication)
	AvoidanceConflicts int
}

// Outcome is the result of a balancing run.
// The balancer never fails: inability to satisfy soft constraints is
// communicated only through Warnings and Stats.AvoidanceConflicts.
type Outcome struct {
	// Groups covers the full roster exactly once, len == Input.NumGroups
	Groups []GroupAssignment

	// Warnings lists unresolved avoidance conflicts, one per conflict
	// found in the final assignment, deduplicated by exact string match
	Warnings []string

	Stats Stats
}

// groupState is the balancer's working view of one group.
// Agency and style counters are maintained incrementally on every
// placement and move so candidate scoring never rescans members.
type groupState struct {
	index        int
	members      []string
	agencyCounts map[string]int
	styleCounts  map[model.PrimaryStyle]int
}

func newGroupState(index int) *groupState {
	return &groupState{
		index:        index,
		members:      []string{},
		agencyCounts: make(map[string]int),
		styleCounts:  make(map[model.PrimaryStyle]int),
	}
}

func (g *groupState) size() int {
	return len(g.members)
}

// add places a trainee in this group and updates the counters
func (g *groupState) add(id, agency string, style model.PrimaryStyle, hasStyle bool) {
	g.members = append(g.members, id)
	if agency != "" {
		g.agencyCounts[agency]++
	}
	if hasStyle {
		g.styleCounts[style]++
	}
}

// removeAt removes the member at position i and updates the counters
func (g *groupState) removeAt(i int, agency string, style model.PrimaryStyle, hasStyle bool) {
	g.members = append(g.members[:i], g.members[i+1:]...)
	if agency != "" {
		g.agencyCounts[agency]--
	}
	if hasStyle {
		g.styleCounts[style]--
	}
}
