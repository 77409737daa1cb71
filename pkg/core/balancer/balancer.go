package balancer

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rowanhart/cohortly/pkg/core/model"
)

// maxRebalanceIterations bounds the size-balancing loop. Constraint
// conflicts can make perfect balance unreachable, so the loop must
// have a hard stop.
const maxRebalanceIterations = 50

// Balance assigns the roster into NumGroups groups.
//
// The algorithm runs four phases in a fixed order:
//  1. agency-aware placement - largest agencies first, members shuffled,
//     each trainee goes to a group with the fewest members of their agency,
//     avoiding conflicts where possible and diversifying learning styles
//  2. unaffiliated placement - same scoring, all groups as candidates
//  3. size balancing - move members from the largest to the smallest group
//     until sizes differ by at most one or no safe move remains
//  4. conflict reporting - every avoidance conflict left in the final
//     assignment becomes a warning
//
// rng drives the shuffles used for tie-breaking placement order. Callers
// wanting reproducible output pass a seeded source; randomness never
// affects coverage or the size invariant. Balance never returns an error:
// every roster/constraint combination produces a complete assignment.
func Balance(input Input, rng *rand.Rand) *Outcome {
	st := newRunState(input)

	// Phase 1: place affiliated trainees, largest agencies first so the
	// biggest affiliations are spread while packing freedom is highest
	for _, agency := range st.agenciesBySize() {
		members := st.byAgency[agency]
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		for _, t := range members {
			candidates := st.leastAgencyGroups(agency)
			st.place(t, candidates)
		}
	}

	// Phase 2: place unaffiliated trainees, all groups as candidates
	rng.Shuffle(len(st.unaffiliated), func(i, j int) {
		st.unaffiliated[i], st.unaffiliated[j] = st.unaffiliated[j], st.unaffiliated[i]
	})
	for _, t := range st.unaffiliated {
		st.place(t, st.groups)
	}

	// Phase 3: even out group sizes
	st.rebalance()

	// Phase 4: report whatever conflicts remain
	warnings := st.conflictWarnings()

	return &Outcome{
		Groups:   st.assignments(),
		Warnings: warnings,
		Stats:    st.buildStats(len(warnings)),
	}
}

// runState holds the working data for a single balancing run
type runState struct {
	input        Input
	groups       []*groupState
	byAgency     map[string][]model.Trainee
	agencyOrder  []string // agencies in first-appearance roster order
	unaffiliated []model.Trainee
	avoidSets    map[string]map[string]bool
	styles       map[string]model.PrimaryStyle
	trainees     map[string]model.Trainee
}

func newRunState(input Input) *runState {
	st := &runState{
		input:     input,
		groups:    make([]*groupState, input.NumGroups),
		byAgency:  make(map[string][]model.Trainee),
		avoidSets: make(map[string]map[string]bool),
		styles:    make(map[string]model.PrimaryStyle),
		trainees:  make(map[string]model.Trainee),
	}

	for i := range st.groups {
		st.groups[i] = newGroupState(i)
	}

	// Avoidance sets are symmetric: an entry for A avoiding B also marks
	// B as avoiding A
	for _, pref := range input.Avoidances {
		if pref.Kind != model.PreferenceAvoid {
			continue
		}
		st.addAvoidance(pref.TraineeIDA, pref.TraineeIDB)
		st.addAvoidance(pref.TraineeIDB, pref.TraineeIDA)
	}

	for _, ls := range input.LearningStyles {
		st.styles[ls.TraineeID] = ls.Primary
	}

	for _, t := range input.Roster {
		st.trainees[t.ID] = t
		if t.HomeAgency == "" {
			st.unaffiliated = append(st.unaffiliated, t)
			continue
		}
		if _, seen := st.byAgency[t.HomeAgency]; !seen {
			st.agencyOrder = append(st.agencyOrder, t.HomeAgency)
		}
		st.byAgency[t.HomeAgency] = append(st.byAgency[t.HomeAgency], t)
	}

	return st
}

func (st *runState) addAvoidance(from, to string) {
	set, ok := st.avoidSets[from]
	if !ok {
		set = make(map[string]bool)
		st.avoidSets[from] = set
	}
	set[to] = true
}

// agenciesBySize returns agencies in descending member-count order,
// ties broken by first appearance in the roster
func (st *runState) agenciesBySize() []string {
	agencies := make([]string, len(st.agencyOrder))
	copy(agencies, st.agencyOrder)
	sort.SliceStable(agencies, func(i, j int) bool {
		return len(st.byAgency[agencies[i]]) > len(st.byAgency[agencies[j]])
	})
	return agencies
}

// leastAgencyGroups returns every group holding the minimum number of
// members from the given agency. Ties are preserved as a set.
func (st *runState) leastAgencyGroups(agency string) []*groupState {
	minCount := -1
	for _, g := range st.groups {
		if minCount == -1 || g.agencyCounts[agency] < minCount {
			minCount = g.agencyCounts[agency]
		}
	}

	var candidates []*groupState
	for _, g := range st.groups {
		if g.agencyCounts[agency] == minCount {
			candidates = append(candidates, g)
		}
	}
	return candidates
}

// place puts a trainee into the best group among candidates.
//
// Conflict-free groups are preferred; if every candidate holds someone the
// trainee avoids, the full candidate set is used and the conflict surfaces
// later as a warning. Among the survivors the group with the fewest members
// sharing the trainee's learning style wins, smaller group on a tie.
// Trainees with no recorded style go to the smallest candidate group.
func (st *runState) place(t model.Trainee, candidates []*groupState) {
	narrowed := make([]*groupState, 0, len(candidates))
	for _, g := range candidates {
		if !st.hasConflict(t.ID, g) {
			narrowed = append(narrowed, g)
		}
	}
	if len(narrowed) == 0 {
		narrowed = candidates
	}

	style, hasStyle := st.styles[t.ID]

	best := narrowed[0]
	for _, g := range narrowed[1:] {
		if hasStyle {
			if g.styleCounts[style] < best.styleCounts[style] ||
				(g.styleCounts[style] == best.styleCounts[style] && g.size() < best.size()) {
				best = g
			}
		} else if g.size() < best.size() {
			best = g
		}
	}

	best.add(t.ID, t.HomeAgency, style, hasStyle)
}

// hasConflict reports whether the trainee avoids (or is avoided by)
// any current member of the group
func (st *runState) hasConflict(id string, g *groupState) bool {
	set := st.avoidSets[id]
	if set == nil {
		return false
	}
	for _, member := range g.members {
		if set[member] {
			return true
		}
	}
	return false
}

// rebalance moves members from the largest group to the smallest until
// sizes differ by at most one or no member can move without introducing
// an avoidance conflict or relocating an agency imbalance.
func (st *runState) rebalance() {
	if len(st.groups) < 2 {
		return
	}

	for iter := 0; iter < maxRebalanceIterations; iter++ {
		largest, smallest := st.groups[0], st.groups[0]
		for _, g := range st.groups[1:] {
			if g.size() > largest.size() {
				largest = g
			}
			if g.size() < smallest.size() {
				smallest = g
			}
		}

		if largest.size()-smallest.size() <= 1 {
			return
		}

		// Scan most-recently-added first for a member that can move
		moved := false
		for i := len(largest.members) - 1; i >= 0; i-- {
			id := largest.members[i]
			if st.hasConflict(id, smallest) {
				continue
			}
			agency := st.trainees[id].HomeAgency
			if agency != "" && smallest.agencyCounts[agency]+1 > largest.agencyCounts[agency]-1 {
				// Moving would just relocate the agency imbalance
				continue
			}

			style, hasStyle := st.styles[id]
			largest.removeAt(i, agency, style, hasStyle)
			smallest.add(id, agency, style, hasStyle)
			moved = true
			break
		}

		if !moved {
			// Forcing a move would violate a constraint for no net benefit
			return
		}
	}
}

// conflictWarnings scans every final group for members that should avoid
// each other. The ordered scan emits both directions of a symmetric
// conflict ("A should avoid B" and "B should avoid A"); deduplication is
// by exact string match only, so both directions survive.
func (st *runState) conflictWarnings() []string {
	var warnings []string
	for _, g := range st.groups {
		for _, a := range g.members {
			set := st.avoidSets[a]
			if set == nil {
				continue
			}
			for _, b := range g.members {
				if a == b || !set[b] {
					continue
				}
				warnings = append(warnings, fmt.Sprintf(
					"Conflict in Group %d: %s should avoid %s",
					g.index+1, st.trainees[a].FirstName, st.trainees[b].FirstName))
			}
		}
	}
	return dedupeStrings(warnings)
}

func (st *runState) assignments() []GroupAssignment {
	groups := make([]GroupAssignment, len(st.groups))
	for i, g := range st.groups {
		ids := make([]string, len(g.members))
		copy(ids, g.members)
		groups[i] = GroupAssignment{GroupIndex: i, TraineeIDs: ids}
	}
	return groups
}

// dedupeStrings removes exact duplicates, keeping first-occurrence order
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
