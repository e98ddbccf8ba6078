package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

func writePlayersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNormalizePositions(t *testing.T) {
	tests := []struct {
		name      string
		positions []string
		want      string
	}{
		{"sorted and joined", []string{"SG", "PG"}, "PG/SG"},
		{"dedupes", []string{"PG", "pg", "PG"}, "PG"},
		{"drops utility slots", []string{"PG", "UTIL", "BN", "IL", "IL+"}, "PG"},
		{"drops P slot", []string{"P", "C"}, "C"},
		{"all excluded", []string{"UTIL", "BN"}, model.NoPosition},
		{"empty", nil, model.NoPosition},
		{"trims and uppercases", []string{" sf ", "pf"}, "PF/SF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePositions(tt.positions))
		})
	}
}

func TestLoadPlayers(t *testing.T) {
	path := writePlayersFile(t, `[
		{
			"player_id": "3112",
			"name": "Luka Doncic",
			"current_team": "Lakers",
			"eligible_positions": ["PG", "SG", "UTIL"],
			"AVG_PTS": 33.7, "AVG_REB": 9.1, "AVG_AST": 8.8,
			"AVG_ST": 1.4, "AVG_BLK": 0.5, "AVG_3PTM": 3.2, "AVG_TO": 4.0,
			"TOTAL_PTS": 337, "TOTAL_REB": 91, "TOTAL_AST": 88,
			"TOTAL_ST": 14, "TOTAL_BLK": 5, "TOTAL_3PTM": 32, "TOTAL_TO": 40,
			"FGM/A": "118/240",
			"FTM/A": "69/88"
		}
	]`)

	records, err := LoadPlayers(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, model.KindPlayer, rec.Kind)
	assert.Equal(t, "3112", rec.ID)
	assert.Equal(t, "Luka Doncic", rec.Name)
	assert.Equal(t, "Lakers", rec.Affiliation)
	assert.Equal(t, "PG/SG", rec.Role)
	assert.Equal(t, 33.7, rec.PeriodAverages[model.StatPTS])
	assert.Equal(t, 337.0, rec.PeriodTotals[model.StatPTS])

	// Percentages recomputed from the count ratios.
	assert.InDelta(t, 0.492, rec.PeriodAverages[model.StatFGP], 1e-9)
	assert.InDelta(t, 0.784, rec.PeriodAverages[model.StatFTP], 1e-9)
	assert.Equal(t, model.MadeAttempted{Made: 118, Attempted: 240}, rec.ShotTotals[model.StatFGMA])
}

func TestLoadPlayersStringAndNullStats(t *testing.T) {
	path := writePlayersFile(t, `[
		{
			"player_id": "7",
			"name": "Edge Case",
			"AVG_PTS": "12.5",
			"AVG_REB": "-",
			"AVG_AST": null,
			"FGM/A": "garbage",
			"FTM/A": ""
		}
	]`)

	records, err := LoadPlayers(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 12.5, rec.PeriodAverages[model.StatPTS])
	assert.Zero(t, rec.PeriodAverages[model.StatREB])
	assert.Zero(t, rec.PeriodAverages[model.StatAST])
	// Malformed fractions contribute zero, and the derived rate is zero.
	assert.Zero(t, rec.PeriodAverages[model.StatFGP])
	assert.Equal(t, model.FreeAgentTeam, rec.Affiliation)
	assert.Equal(t, model.NoPosition, rec.Role)
}

func TestLoadPlayersSkipsMissingID(t *testing.T) {
	path := writePlayersFile(t, `[
		{"player_id": "", "name": "Ghost"},
		{"player_id": "2", "name": "Kept"}
	]`)

	records, err := LoadPlayers(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kept", records[0].Name)
}

func TestLoadPlayersSortedByID(t *testing.T) {
	path := writePlayersFile(t, `[
		{"player_id": "9", "name": "Last"},
		{"player_id": "1", "name": "First"},
		{"player_id": "5", "name": "Middle"}
	]`)

	records, err := LoadPlayers(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "5", records[1].ID)
	assert.Equal(t, "9", records[2].ID)
}

func TestLoadPlayersMissingFile(t *testing.T) {
	_, err := LoadPlayers(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
