package balancer

import (
	"gonum.org/v1/gonum/stat"

	"github.com/rowanhart/cohortly/pkg/core/model"
)

// buildStats assembles the diagnostic summary for a finished assignment
func (st *runState) buildStats(conflictCount int) Stats {
	stats := Stats{
		TotalTrainees:      len(st.input.Roster),
		RequestedGroups:    st.input.NumGroups,
		GroupSizes:         make([]int, len(st.groups)),
		AgencyTotals:       make(map[string]int),
		AgencyDistribution: make([]map[string]int, len(st.groups)),
		StyleDistribution:  make([]map[string]int, len(st.groups)),
		AvoidanceConflicts: conflictCount,
	}

	for _, t := range st.input.Roster {
		if t.HomeAgency != "" {
			stats.AgencyTotals[t.HomeAgency]++
		}
	}

	sizes := make([]float64, len(st.groups))
	for i, g := range st.groups {
		stats.GroupSizes[i] = g.size()
		sizes[i] = float64(g.size())

		agencies := make(map[string]int)
		for agency, count := range g.agencyCounts {
			if count > 0 {
				agencies[agency] = count
			}
		}
		stats.AgencyDistribution[i] = agencies

		styles := map[string]int{
			string(model.StyleAudio):       0,
			string(model.StyleVisual):      0,
			string(model.StyleKinesthetic): 0,
			model.StyleUnassessed:          0,
		}
		assessed := 0
		for style, count := range g.styleCounts {
			styles[string(style)] = count
			assessed += count
		}
		styles[model.StyleUnassessed] = g.size() - assessed
		stats.StyleDistribution[i] = styles
	}

	if len(sizes) > 0 {
		stats.SizeStdDev = stat.PopStdDev(sizes, nil)
	}

	return stats
}
