package analytics

import (
	"sort"
	"strings"

	"github.com/soporte-insights/backend/internal/models"
)

const (
	unassignedAgent = "Sin Asignar"
	topAgentLimit   = 15
	slaBreachedFlag = "vencido"
)

// AgentPerformance is one agent's rollup for a single dataset (or year
// slice).
type AgentPerformance struct {
	AgentName          string  `json:"agentName"`
	TicketCount        int     `json:"ticketCount"`
	AvgResolutionHours float64 `json:"avgResolutionHours"`
	SlaMet             int     `json:"slaMet"`
	SlaMissed          int     `json:"slaMissed"`
	SlaRate            float64 `json:"slaRate"`
}

// ComparedAgentPerformance joins the two years' rollups by agent name;
// either side may be nil when the agent was only active in one year.
type ComparedAgentPerformance struct {
	AgentName string            `json:"agentName"`
	Current   *AgentPerformance `json:"current"`
	Previous  *AgentPerformance `json:"previous"`
}

// OverallStats mirrors the per-agent computation over the whole dataset.
type OverallStats struct {
	SlaMet             int     `json:"slaMet"`
	SlaMissed          int     `json:"slaMissed"`
	SlaRate            float64 `json:"slaRate"`
	AvgResolutionHours float64 `json:"avgResolutionHours"`
}

// Overall carries the global stats per comparison year; Previous is nil
// outside comparison mode.
type Overall struct {
	Current  OverallStats  `json:"current"`
	Previous *OverallStats `json:"previous"`
}

// BarPoint projects an agent's ticket count for the ranking chart.
type BarPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ComparedBarPoint carries both years' ticket counts for an agent.
type ComparedBarPoint struct {
	Name          string `json:"name"`
	CurrentValue  int    `json:"currentValue"`
	PreviousValue int    `json:"previousValue"`
}

// ScatterPoint is one agent in the count-vs-resolution projection.
type ScatterPoint struct {
	X     int     `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// EfficiencyResult bundles the global stats, per-agent tables and chart
// projections. Agents/Bars are set in single mode, the Compared variants in
// comparison mode.
type EfficiencyResult struct {
	Overall        Overall                    `json:"overall"`
	Agents         []AgentPerformance         `json:"agents,omitempty"`
	ComparedAgents []ComparedAgentPerformance `json:"comparedAgents,omitempty"`
	Bars           []BarPoint                 `json:"bars,omitempty"`
	ComparedBars   []ComparedBarPoint         `json:"comparedBars,omitempty"`
	Scatter        []ScatterPoint             `json:"scatter"`
}

// CalculateEfficiency computes global and per-agent counts, resolution
// averages and SLA rates, joined across years in comparison mode.
func CalculateEfficiency(tickets []models.Ticket, compare bool, years *models.ComparisonYears) EfficiencyResult {
	var res EfficiencyResult

	if compare && years != nil {
		current := sliceYear(tickets, years.Current)
		previous := sliceYear(tickets, years.Previous)

		prevStats := overallStats(previous)
		res.Overall = Overall{Current: overallStats(current), Previous: &prevStats}

		res.ComparedAgents = joinAgentTables(agentRollup(current), agentRollup(previous))
		for i, a := range res.ComparedAgents {
			if i == topAgentLimit {
				break
			}
			point := ComparedBarPoint{Name: a.AgentName}
			if a.Current != nil {
				point.CurrentValue = a.Current.TicketCount
			}
			if a.Previous != nil {
				point.PreviousValue = a.Previous.TicketCount
			}
			res.ComparedBars = append(res.ComparedBars, point)
		}
		for _, a := range res.ComparedAgents {
			if a.Current == nil {
				continue
			}
			res.Scatter = append(res.Scatter, ScatterPoint{
				X:     a.Current.TicketCount,
				Y:     a.Current.AvgResolutionHours,
				Label: a.AgentName,
			})
		}
		return res
	}

	res.Overall = Overall{Current: overallStats(tickets)}
	res.Agents = agentRollup(tickets)
	for i, a := range res.Agents {
		if i == topAgentLimit {
			break
		}
		res.Bars = append(res.Bars, BarPoint{Name: a.AgentName, Value: a.TicketCount})
	}
	for _, a := range res.Agents {
		res.Scatter = append(res.Scatter, ScatterPoint{X: a.TicketCount, Y: a.AvgResolutionHours, Label: a.AgentName})
	}
	return res
}

func agentRollup(tickets []models.Ticket) []AgentPerformance {
	grouped := map[string][]models.Ticket{}
	var order []string
	for _, t := range tickets {
		name := unassignedAgent
		if t.UltimoAgente != nil {
			name = *t.UltimoAgente
		}
		if _, ok := grouped[name]; !ok {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], t)
	}

	out := make([]AgentPerformance, 0, len(order))
	for _, name := range order {
		out = append(out, agentStats(name, grouped[name]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TicketCount > out[j].TicketCount
	})
	return out
}

func agentStats(name string, tickets []models.Ticket) AgentPerformance {
	a := AgentPerformance{AgentName: name, TicketCount: len(tickets)}

	var resolutionSum float64
	resolutionCount := 0
	for _, t := range tickets {
		if !t.IsClosed() {
			continue
		}
		if hours, ok := t.ResolutionHours(); ok {
			resolutionSum += hours
			resolutionCount++
		}
	}
	if resolutionCount > 0 {
		a.AvgResolutionHours = resolutionSum / float64(resolutionCount)
	}

	for _, t := range tickets {
		if slaBreached(t) {
			a.SlaMissed++
		}
	}
	a.SlaMet = a.TicketCount - a.SlaMissed
	if a.TicketCount > 0 {
		a.SlaRate = float64(a.SlaMet) / float64(a.TicketCount) * 100
	} else {
		// an agent with no tickets has breached nothing
		a.SlaRate = 100
	}
	return a
}

func overallStats(tickets []models.Ticket) OverallStats {
	if len(tickets) == 0 {
		return OverallStats{}
	}
	stats := agentStats("", tickets)
	return OverallStats{
		SlaMet:             stats.SlaMet,
		SlaMissed:          stats.SlaMissed,
		SlaRate:            stats.SlaRate,
		AvgResolutionHours: stats.AvgResolutionHours,
	}
}

// joinAgentTables merges the per-year tables by agent name, ranked by
// current-year ticket count with current-year absentees last.
func joinAgentTables(current, previous []AgentPerformance) []ComparedAgentPerformance {
	joined := map[string]*ComparedAgentPerformance{}
	var order []string

	for i := range current {
		a := current[i]
		joined[a.AgentName] = &ComparedAgentPerformance{AgentName: a.AgentName, Current: &a}
		order = append(order, a.AgentName)
	}
	for i := range previous {
		a := previous[i]
		entry, ok := joined[a.AgentName]
		if !ok {
			entry = &ComparedAgentPerformance{AgentName: a.AgentName}
			joined[a.AgentName] = entry
			order = append(order, a.AgentName)
		}
		entry.Previous = &a
	}

	out := make([]ComparedAgentPerformance, 0, len(order))
	for _, name := range order {
		out = append(out, *joined[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return currentCount(out[i]) > currentCount(out[j])
	})
	return out
}

func currentCount(a ComparedAgentPerformance) int {
	if a.Current == nil {
		return 0
	}
	return a.Current.TicketCount
}

func slaBreached(t models.Ticket) bool {
	return t.Vencido != nil && strings.ToLower(*t.Vencido) == slaBreachedFlag
}
