package evaluator

import (
	"context"
	"fmt"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
)

// SuiteCase is one question with its reference answer.
type SuiteCase struct {
	Question    string `json:"question"`
	GroundTruth string `json:"ground_truth"`
}

// DefaultSuite returns the built-in regression set. The questions cover the
// main retrieval shapes: a single-player average, a league-wide ranking, a
// derived percentage, and two team aggregates.
func DefaultSuite() []SuiteCase {
	return []SuiteCase{
		{
			Question:    "What is the average points of Luka Doncic?",
			GroundTruth: "Luka Doncic has an average of 33.7 points per game.",
		},
		{
			Question:    "Who has the highest average block?",
			GroundTruth: "Victor Wembanyama has the highest average block with 3.0 blocks per game.",
		},
		{
			Question:    "What is the field goal percentage of Donovan Mitchell?",
			GroundTruth: "Donovan Mitchell has a field goal percentage of 49.2%.",
		},
		{
			Question:    "Which team has the highest total rebound?",
			GroundTruth: "Haramball has the highest total rebound with 2,371 rebounds.",
		},
		{
			Question:    "What is Ati and The Hippos's total number of steals?",
			GroundTruth: "Ati and The Hippos have a total of 447 steals.",
		},
	}
}

// QueryFunc runs one question through the chat pipeline.
type QueryFunc func(ctx context.Context, question string) (*model.QueryResult, error)

// SuiteEntry is the evaluated outcome of one suite case.
type SuiteEntry struct {
	Question    string       `json:"question"`
	GroundTruth string       `json:"ground_truth"`
	Intent      model.Intent `json:"intent"`
	Answer      string       `json:"answer"`
	Result      *Result      `json:"result"`
}

// SuiteReport aggregates the per-case results.
type SuiteReport struct {
	Entries []SuiteEntry `json:"entries"`

	AvgFaithfulness    float64 `json:"avg_faithfulness"`
	AvgAnswerRelevancy float64 `json:"avg_answer_relevancy"`
	AvgContextRecall   float64 `json:"avg_context_recall"`
	AvgOverallScore    float64 `json:"avg_overall_score"`
}

// RunSuite runs every case through the pipeline and evaluates the answers.
// A case whose query fails aborts the run: a broken pipeline should surface
// as an error, not as a low score.
func (e *Evaluator) RunSuite(ctx context.Context, cases []SuiteCase, query QueryFunc) (*SuiteReport, error) {
	if len(cases) == 0 {
		cases = DefaultSuite()
	}

	report := &SuiteReport{
		Entries: make([]SuiteEntry, 0, len(cases)),
	}

	for _, c := range cases {
		queryResult, err := query(ctx, c.Question)
		if err != nil {
			return nil, fmt.Errorf("query failed for %q: %w", c.Question, err)
		}

		contexts := make([]string, 0, len(queryResult.Sources))
		for _, source := range queryResult.Sources {
			contexts = append(contexts, source.Content)
		}

		result, err := e.Evaluate(ctx, &Input{
			Question:    c.Question,
			Answer:      queryResult.Answer,
			Contexts:    contexts,
			GroundTruth: c.GroundTruth,
		})
		if err != nil {
			return nil, fmt.Errorf("evaluation failed for %q: %w", c.Question, err)
		}

		logger.Infow("Suite case evaluated",
			"question", c.Question,
			"intent", queryResult.Intent,
			"faithfulness", result.Faithfulness,
			"context_recall", result.ContextRecall,
		)

		report.Entries = append(report.Entries, SuiteEntry{
			Question:    c.Question,
			GroundTruth: c.GroundTruth,
			Intent:      queryResult.Intent,
			Answer:      queryResult.Answer,
			Result:      result,
		})

		report.AvgFaithfulness += result.Faithfulness
		report.AvgAnswerRelevancy += result.AnswerRelevancy
		report.AvgContextRecall += result.ContextRecall
		report.AvgOverallScore += result.OverallScore
	}

	n := float64(len(report.Entries))
	report.AvgFaithfulness /= n
	report.AvgAnswerRelevancy /= n
	report.AvgContextRecall /= n
	report.AvgOverallScore /= n

	return report, nil
}
