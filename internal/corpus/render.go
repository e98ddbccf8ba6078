package corpus

import (
	"fmt"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/utils/json"
)

// Document is the unit stored in the retrieval index: the full textual
// rendering of exactly one entity. The corpus is small enough that entities
// are never split into sub-chunks; splitting a small JSON object apart would
// separate a stat from its label.
type Document struct {
	// ID is "player:<id>" or "team:<name>", stable across rebuilds.
	ID string

	// Name is the entity display name.
	Name string

	// Kind is the entity kind (player or team).
	Kind string

	// Content is the serialized record text that gets embedded.
	Content string
}

// RenderPlayer serializes one StatRecord into a single indexable document.
func RenderPlayer(rec model.StatRecord) (Document, error) {
	content, err := json.Marshal(rec)
	if err != nil {
		return Document{}, fmt.Errorf("failed to render player %s: %w", rec.ID, err)
	}
	return Document{
		ID:      fmt.Sprintf("player:%s", rec.ID),
		Name:    rec.Name,
		Kind:    model.KindPlayer,
		Content: string(content),
	}, nil
}

// RenderTeam serializes one AggregateSummary into a single indexable
// document.
func RenderTeam(sum model.AggregateSummary) (Document, error) {
	content, err := json.Marshal(sum)
	if err != nil {
		return Document{}, fmt.Errorf("failed to render team %s: %w", sum.TeamName, err)
	}
	return Document{
		ID:      fmt.Sprintf("team:%s", sum.TeamName),
		Name:    sum.TeamName,
		Kind:    model.KindTeam,
		Content: string(content),
	}, nil
}

// Build loads both source collections and renders the complete document set.
// Any unreadable source file fails the whole build: corpus output is a full
// replacement, all-or-nothing, and a failed build must not disturb whatever
// index is currently serving.
func Build(playersPath, weeklyPath string) ([]Document, error) {
	players, err := LoadPlayers(playersPath)
	if err != nil {
		return nil, err
	}
	teams, err := BuildTeamSummaries(weeklyPath)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(players)+len(teams))
	for _, rec := range players {
		doc, err := RenderPlayer(rec)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	for _, sum := range teams {
		doc, err := RenderTeam(sum)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
