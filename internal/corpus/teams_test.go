package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

func writeWeeklyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weekly_stats.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAggregateTeamsSumsAndAverages(t *testing.T) {
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{
				"PTS": "4", "REB": "10", "FGM/A": "5/8", "FTM/A": "2/4",
			}},
		},
		"week_2": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{
				"PTS": "8", "REB": "6", "FGM/A": "6/4", "FTM/A": "1/2",
			}},
		},
	}

	summaries := AggregateTeams(weeks)
	require.Len(t, summaries, 1)

	st := summaries[0]
	assert.Equal(t, "ST", st.TeamName)
	assert.Equal(t, 2, st.WeeksCounted)
	assert.Equal(t, 12.0, st.Totals["PTS"])
	assert.Equal(t, 16.0, st.Totals["REB"])
	assert.Equal(t, 6.0, st.Averages["PTS"])
	assert.Equal(t, 8.0, st.Averages["REB"])
	assert.Equal(t, "11/12", st.Totals["FGM/A"])
	assert.Equal(t, "3/6", st.Totals["FTM/A"])
}

func TestAggregatePercentageFromSummedCounts(t *testing.T) {
	// Week 1: 5/8 (62.5%), week 2: 6/4. The rate must come from the summed
	// counts (11/12 = 0.917), not from averaging the weekly percentages.
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"FGM/A": "5/8"}},
		},
		"week_2": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"FGM/A": "6/4"}},
		},
	}

	summaries := AggregateTeams(weeks)
	require.Len(t, summaries, 1)
	assert.InDelta(t, 0.917, summaries[0].Averages[model.StatFGP], 1e-9)
}

func TestAggregateMalformedWeekStillCounts(t *testing.T) {
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"PTS": "10", "FGM/A": "4/8"}},
		},
		"week_2": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"PTS": "not-a-number", "FGM/A": "broken"}},
		},
	}

	summaries := AggregateTeams(weeks)
	require.Len(t, summaries, 1)

	st := summaries[0]
	// The malformed week contributes zero but still counts as played.
	assert.Equal(t, 2, st.WeeksCounted)
	assert.Equal(t, 10.0, st.Totals["PTS"])
	assert.Equal(t, 5.0, st.Averages["PTS"])
	assert.InDelta(t, 0.5, st.Averages[model.StatFGP], 1e-9)
}

func TestAggregateSkipsUnnamedTeams(t *testing.T) {
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "", Stats: map[string]string{"PTS": "99"}},
			{TeamName: "Haramball", Stats: map[string]string{"PTS": "50"}},
		},
	}

	summaries := AggregateTeams(weeks)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Haramball", summaries[0].TeamName)
}

func TestAggregateDeterministicOrder(t *testing.T) {
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "Zephyrs", Stats: map[string]string{"PTS": "1"}},
			{TeamName: "Ati and The Hippos", Stats: map[string]string{"PTS": "2"}},
			{TeamName: "Haramball", Stats: map[string]string{"PTS": "3"}},
		},
	}

	for i := 0; i < 5; i++ {
		summaries := AggregateTeams(weeks)
		require.Len(t, summaries, 3)
		assert.Equal(t, "Ati and The Hippos", summaries[0].TeamName)
		assert.Equal(t, "Haramball", summaries[1].TeamName)
		assert.Equal(t, "Zephyrs", summaries[2].TeamName)
	}
}

func TestAggregateNarrative(t *testing.T) {
	weeks := WeeklyStats{
		"week_1": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"PTS": "4"}},
		},
		"week_2": []TeamWeek{
			{TeamName: "ST", Stats: map[string]string{"PTS": "8"}},
		},
	}

	summaries := AggregateTeams(weeks)
	require.Len(t, summaries, 1)
	assert.Equal(t, "ST scored 12 total points over 2 weeks, averaging 6 points per week.", summaries[0].Narrative)
}

func TestBuildTeamSummaries(t *testing.T) {
	path := writeWeeklyFile(t, `{
		"week_1": [
			{"team_name": "ST", "stats": {"PTS": "4", "FGM/A": "5/8"}}
		]
	}`)

	summaries, err := BuildTeamSummaries(path)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].WeeksCounted)
}

func TestBuildTeamSummariesMissingFile(t *testing.T) {
	_, err := BuildTeamSummaries(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
