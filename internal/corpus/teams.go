package corpus

import (
	"fmt"
	"os"
	"sort"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/utils/json"
)

// TeamWeek is one team's raw stat line for one matchup week. Stat values are
// numeric strings or "<made>/<attempted>" pairs as delivered upstream.
type TeamWeek struct {
	TeamName string            `json:"team_name"`
	Stats    map[string]string `json:"stats"`
}

// WeeklyStats is the team weekly-statistics collection, keyed by week id
// ("week_1", "week_2", ...).
type WeeklyStats map[string][]TeamWeek

// LoadWeeklyStats reads the weekly team-statistics collection.
func LoadWeeklyStats(path string) (WeeklyStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly stats %s: %w", path, err)
	}

	var weeks WeeklyStats
	if err := json.Unmarshal(data, &weeks); err != nil {
		return nil, fmt.Errorf("failed to parse weekly stats %s: %w", path, err)
	}
	return weeks, nil
}

// teamTotals accumulates one team's running sums across weeks.
type teamTotals struct {
	weeks int
	fgm   float64
	fga   float64
	ftm   float64
	fta   float64
	sums  map[string]float64
}

// AggregateTeams folds weekly team lines into one AggregateSummary per team.
// Weeks are visited in sorted key order and output is sorted by team name,
// so two builds over identical input produce identical summaries.
//
// The week counter increments once per week a team appears in, whether or
// not that week's stats were parseable: a malformed line contributes zero to
// the sums but still counts as a played week.
func AggregateTeams(weeks WeeklyStats) []model.AggregateSummary {
	weekIDs := make([]string, 0, len(weeks))
	for id := range weeks {
		weekIDs = append(weekIDs, id)
	}
	sort.Strings(weekIDs)

	totals := make(map[string]*teamTotals)
	for _, weekID := range weekIDs {
		for _, team := range weeks[weekID] {
			if team.TeamName == "" {
				logger.Warnw("skipping unnamed team line", "week", weekID)
				continue
			}
			agg := totals[team.TeamName]
			if agg == nil {
				agg = &teamTotals{sums: make(map[string]float64, len(model.CountingStats))}
				totals[team.TeamName] = agg
			}
			agg.weeks++

			fgm, fga := ParseFraction(team.Stats[model.StatFGMA])
			ftm, fta := ParseFraction(team.Stats[model.StatFTMA])
			agg.fgm += fgm
			agg.fga += fga
			agg.ftm += ftm
			agg.fta += fta
			for _, code := range model.CountingStats {
				agg.sums[code] += SafeFloat(team.Stats[code])
			}
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]model.AggregateSummary, 0, len(names))
	for _, name := range names {
		agg := totals[name]
		if agg.weeks < 1 {
			continue
		}
		summaries = append(summaries, finalizeTeam(name, agg))
	}
	return summaries
}

// finalizeTeam derives rates and rounded averages from the accumulated
// totals. Percentages come from summed made/attempted counts, never from
// averaging per-week percentages, so low-attempt weeks do not skew the rate.
func finalizeTeam(name string, agg *teamTotals) model.AggregateSummary {
	wp := float64(agg.weeks)

	summaryTotals := make(map[string]any, len(model.CountingStats)+2)
	averages := make(map[string]float64, len(model.CountingStats)+2)
	for _, code := range model.CountingStats {
		summaryTotals[code] = agg.sums[code]
		averages[code] = Round2(agg.sums[code] / wp)
	}
	summaryTotals[model.StatFGMA] = fmt.Sprintf("%d/%d", int(agg.fgm), int(agg.fga))
	summaryTotals[model.StatFTMA] = fmt.Sprintf("%d/%d", int(agg.ftm), int(agg.fta))
	averages[model.StatFGP] = Round3(Ratio(agg.fgm, agg.fga))
	averages[model.StatFTP] = Round3(Ratio(agg.ftm, agg.fta))

	return model.AggregateSummary{
		TeamName:     name,
		WeeksCounted: agg.weeks,
		Totals:       summaryTotals,
		Averages:     averages,
		Narrative: fmt.Sprintf("%s scored %g total points over %d weeks, averaging %g points per week.",
			name, agg.sums[model.StatPTS], agg.weeks, averages[model.StatPTS]),
	}
}

// BuildTeamSummaries loads and aggregates the weekly collection in one step.
func BuildTeamSummaries(path string) ([]model.AggregateSummary, error) {
	weeks, err := LoadWeeklyStats(path)
	if err != nil {
		return nil, err
	}
	return AggregateTeams(weeks), nil
}
