package corpus

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/utils/json"
)

// excludedPositions are roster-slot codes that carry no positional meaning;
// they never appear in a normalized role string.
var excludedPositions = map[string]bool{
	"P":    true,
	"UTIL": true,
	"IL":   true,
	"IL+":  true,
	"BN":   true,
}

// flexFloat decodes a stat value that upstream may emit as a number, a
// numeric string, a placeholder ("-") or null. Anything unparseable decodes
// as zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(SafeFloat(str))
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// rawPlayer mirrors the player-statistics collection produced by the
// upstream acquisition step.
type rawPlayer struct {
	PlayerID          string    `json:"player_id"`
	Name              string    `json:"name"`
	CurrentTeam       string    `json:"current_team"`
	Position          string    `json:"position"`
	EligiblePositions []string  `json:"eligible_positions"`
	AvgPTS            flexFloat `json:"AVG_PTS"`
	AvgREB            flexFloat `json:"AVG_REB"`
	AvgAST            flexFloat `json:"AVG_AST"`
	AvgST             flexFloat `json:"AVG_ST"`
	AvgBLK            flexFloat `json:"AVG_BLK"`
	Avg3PTM           flexFloat `json:"AVG_3PTM"`
	AvgTO             flexFloat `json:"AVG_TO"`
	TotalPTS          flexFloat `json:"TOTAL_PTS"`
	TotalREB          flexFloat `json:"TOTAL_REB"`
	TotalAST          flexFloat `json:"TOTAL_AST"`
	TotalST           flexFloat `json:"TOTAL_ST"`
	TotalBLK          flexFloat `json:"TOTAL_BLK"`
	Total3PTM         flexFloat `json:"TOTAL_3PTM"`
	TotalTO           flexFloat `json:"TOTAL_TO"`
	FGMA              string    `json:"FGM/A"`
	FTMA              string    `json:"FTM/A"`
}

// NormalizePositions dedupes, uppercases and sorts eligible position codes,
// drops utility/bench/injury slots, and joins the rest with "/". An empty
// result becomes the NoPosition sentinel.
func NormalizePositions(positions []string) string {
	seen := make(map[string]bool, len(positions))
	var kept []string
	for _, p := range positions {
		code := strings.ToUpper(strings.TrimSpace(p))
		if code == "" || excludedPositions[code] || seen[code] {
			continue
		}
		seen[code] = true
		kept = append(kept, code)
	}
	if len(kept) == 0 {
		return model.NoPosition
	}
	sort.Strings(kept)
	return strings.Join(kept, "/")
}

// LoadPlayers reads the player-statistics collection and converts every
// entry into an immutable StatRecord. Derived percentages are recomputed
// from the made/attempted totals so the record invariant holds regardless of
// what upstream reported.
func LoadPlayers(path string) ([]model.StatRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player stats %s: %w", path, err)
	}

	var raw []rawPlayer
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse player stats %s: %w", path, err)
	}

	records := make([]model.StatRecord, 0, len(raw))
	for _, p := range raw {
		if p.PlayerID == "" {
			logger.Warnw("skipping player record without id", "name", p.Name)
			continue
		}
		records = append(records, buildPlayerRecord(p))
	}

	// Stable source order: by id, so identical input yields identical
	// output byte for byte.
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	return records, nil
}

func buildPlayerRecord(p rawPlayer) model.StatRecord {
	fgm, fga := ParseFraction(p.FGMA)
	ftm, fta := ParseFraction(p.FTMA)

	affiliation := p.CurrentTeam
	if affiliation == "" {
		affiliation = model.FreeAgentTeam
	}

	role := p.Position
	if len(p.EligiblePositions) > 0 {
		role = NormalizePositions(p.EligiblePositions)
	} else if role == "" {
		role = model.NoPosition
	} else {
		role = NormalizePositions(strings.Split(role, "/"))
	}

	return model.StatRecord{
		Kind:        model.KindPlayer,
		ID:          p.PlayerID,
		Name:        p.Name,
		Affiliation: affiliation,
		Role:        role,
		PeriodAverages: map[string]float64{
			model.StatPTS:  Round2(float64(p.AvgPTS)),
			model.StatREB:  Round2(float64(p.AvgREB)),
			model.StatAST:  Round2(float64(p.AvgAST)),
			model.StatST:   Round2(float64(p.AvgST)),
			model.StatBLK:  Round2(float64(p.AvgBLK)),
			model.Stat3PTM: Round2(float64(p.Avg3PTM)),
			model.StatTO:   Round2(float64(p.AvgTO)),
			// Recomputed from the exact count ratios, never taken from
			// the upstream percentage fields.
			model.StatFGP: Round3(Ratio(fgm, fga)),
			model.StatFTP: Round3(Ratio(ftm, fta)),
		},
		PeriodTotals: map[string]float64{
			model.StatPTS:  float64(p.TotalPTS),
			model.StatREB:  float64(p.TotalREB),
			model.StatAST:  float64(p.TotalAST),
			model.StatST:   float64(p.TotalST),
			model.StatBLK:  float64(p.TotalBLK),
			model.Stat3PTM: float64(p.Total3PTM),
			model.StatTO:   float64(p.TotalTO),
		},
		ShotTotals: map[string]model.MadeAttempted{
			model.StatFGMA: {Made: fgm, Attempted: fga},
			model.StatFTMA: {Made: ftm, Attempted: fta},
		},
	}
}
