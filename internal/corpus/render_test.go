package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

func TestRenderPlayer(t *testing.T) {
	rec := model.StatRecord{
		Kind: model.KindPlayer,
		ID:   "3112",
		Name: "Luka Doncic",
		PeriodAverages: map[string]float64{
			model.StatPTS: 33.7,
		},
	}

	doc, err := RenderPlayer(rec)
	require.NoError(t, err)
	assert.Equal(t, "player:3112", doc.ID)
	assert.Equal(t, "Luka Doncic", doc.Name)
	assert.Equal(t, model.KindPlayer, doc.Kind)
	assert.Contains(t, doc.Content, "33.7")
	assert.Contains(t, doc.Content, "Luka Doncic")
}

func TestRenderTeam(t *testing.T) {
	sum := model.AggregateSummary{
		TeamName:     "Haramball",
		WeeksCounted: 12,
		Totals:       map[string]any{"REB": 2371.0},
	}

	doc, err := RenderTeam(sum)
	require.NoError(t, err)
	assert.Equal(t, "team:Haramball", doc.ID)
	assert.Equal(t, model.KindTeam, doc.Kind)
	assert.Contains(t, doc.Content, "2371")
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	playersPath := filepath.Join(dir, "players.json")
	weeklyPath := filepath.Join(dir, "weekly_stats.json")

	require.NoError(t, os.WriteFile(playersPath, []byte(`[
		{"player_id": "1", "name": "Alpha", "AVG_PTS": 20}
	]`), 0o644))
	require.NoError(t, os.WriteFile(weeklyPath, []byte(`{
		"week_1": [{"team_name": "ST", "stats": {"PTS": "4"}}]
	}`), 0o644))

	docs, err := Build(playersPath, weeklyPath)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Players first, then teams, each internally sorted.
	assert.Equal(t, "player:1", docs[0].ID)
	assert.Equal(t, "team:ST", docs[1].ID)
}

func TestBuildFailsWhenEitherSourceMissing(t *testing.T) {
	dir := t.TempDir()
	playersPath := filepath.Join(dir, "players.json")
	require.NoError(t, os.WriteFile(playersPath, []byte(`[]`), 0o644))

	_, err := Build(playersPath, filepath.Join(dir, "absent.json"))
	require.Error(t, err)

	_, err = Build(filepath.Join(dir, "absent.json"), filepath.Join(dir, "absent.json"))
	require.Error(t, err)
}

func TestBuildDeterministic(t *testing.T) {
	dir := t.TempDir()
	playersPath := filepath.Join(dir, "players.json")
	weeklyPath := filepath.Join(dir, "weekly_stats.json")

	require.NoError(t, os.WriteFile(playersPath, []byte(`[
		{"player_id": "2", "name": "Beta"},
		{"player_id": "1", "name": "Alpha"}
	]`), 0o644))
	require.NoError(t, os.WriteFile(weeklyPath, []byte(`{
		"week_1": [
			{"team_name": "Zephyrs", "stats": {"PTS": "1"}},
			{"team_name": "Ati", "stats": {"PTS": "2"}}
		]
	}`), 0o644))

	first, err := Build(playersPath, weeklyPath)
	require.NoError(t, err)
	second, err := Build(playersPath, weeklyPath)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
