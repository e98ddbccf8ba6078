package model

// Entity kinds for statistical records.
const (
	KindPlayer = "player"
	KindTeam   = "team"
)

// Sentinel values used by StatRecord fields.
const (
	// FreeAgentTeam marks a player without a roster affiliation.
	FreeAgentTeam = "Free Agent"
	// NoPosition marks a player with no eligible positions after
	// normalization.
	NoPosition = "N/A"
)

// Stat codes of the nine standard fantasy categories plus the two derived
// percentage stats.
const (
	StatPTS  = "PTS"
	StatREB  = "REB"
	StatAST  = "AST"
	StatST   = "ST"
	StatBLK  = "BLK"
	Stat3PTM = "3PTM"
	StatTO   = "TO"
	StatFGP  = "FG%"
	StatFTP  = "FT%"
	// StatFGMA and StatFTMA are made/attempted pairs, kept as exact count
	// ratios rather than lossy percentages.
	StatFGMA = "FGM/A"
	StatFTMA = "FTM/A"
)

// CountingStats are the simple cumulative categories; their aggregates
// average by dividing totals by weeks counted.
var CountingStats = []string{StatPTS, StatREB, StatAST, StatST, StatBLK, Stat3PTM, StatTO}

// StatRecord is one immutable per-entity statistics document, built once per
// corpus run and superseded (never mutated) by the next run.
type StatRecord struct {
	// Kind discriminates player and team records.
	Kind string `json:"kind"`

	// ID is stable and unique within its kind.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Affiliation is the current team name, or FreeAgentTeam.
	Affiliation string `json:"affiliation,omitempty"`

	// Role is the canonical "/"-joined eligible position string, or
	// NoPosition when empty.
	Role string `json:"role,omitempty"`

	// PeriodAverages maps stat codes to per-period (per-game) values.
	PeriodAverages map[string]float64 `json:"period_averages"`

	// PeriodTotals maps stat codes to cumulative values. Made/attempted
	// pairs are kept under StatFGMA/StatFTMA in MadeAttempted form, not
	// here.
	PeriodTotals map[string]float64 `json:"period_totals"`

	// ShotTotals holds the exact made/attempted count ratios.
	ShotTotals map[string]MadeAttempted `json:"shot_totals"`
}

// MadeAttempted is an exact count ratio such as field goals made/attempted.
type MadeAttempted struct {
	Made      float64 `json:"made"`
	Attempted float64 `json:"attempted"`
}

// Pct returns made/attempted, defined as exactly 0 when no attempts were
// recorded. It never produces NaN or Inf.
func (m MadeAttempted) Pct() float64 {
	if m.Attempted <= 0 {
		return 0
	}
	return m.Made / m.Attempted
}

// AggregateSummary is a team aggregate derived from multiple weekly
// StatRecords.
type AggregateSummary struct {
	TeamName string `json:"team_name"`

	// WeeksCounted is the number of weeks contributing to the aggregate;
	// entities with zero counted weeks are excluded from build output.
	WeeksCounted int `json:"weeks_counted"`

	// Totals holds cumulative sums. Made/attempted pairs are serialized as
	// integer-valued "<made>/<attempted>" strings for auditability, so the
	// value type is any (float64 or string).
	Totals map[string]any `json:"totals"`

	// Averages holds totals/weeksCounted for counting stats and
	// madeTotal/attemptedTotal for percentage stats. Percentages are never
	// the mean of per-week percentages.
	Averages map[string]float64 `json:"averages"`

	// Narrative is a generated one-sentence summary of the headline stat.
	// Purely descriptive; no numeric computation reads it.
	Narrative string `json:"text_description"`
}
