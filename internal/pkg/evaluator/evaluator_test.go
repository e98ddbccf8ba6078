package evaluator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/model"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/pkg/evaluator"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// mockChatProvider answers the judge prompts by pattern matching.
type mockChatProvider struct {
	claims      string
	verdict     string
	questions   string
	generateErr error
}

func (m *mockChatProvider) Generate(ctx context.Context, prompt, systemPrompt string) (*llm.GenerateResponse, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	switch {
	case strings.Contains(prompt, "Extract every factual claim"):
		return &llm.GenerateResponse{Content: m.claims}, nil
	case strings.Contains(prompt, "supported by, or can be derived from"):
		return &llm.GenerateResponse{Content: m.verdict}, nil
	case strings.Contains(prompt, "questions that could have produced"):
		return &llm.GenerateResponse{Content: m.questions}, nil
	}
	return &llm.GenerateResponse{Content: "unexpected prompt"}, nil
}

func (m *mockChatProvider) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return "", nil
}

func (m *mockChatProvider) Name() string { return "mock-chat" }

type mockEmbedProvider struct {
	vector []float32
}

func (m *mockEmbedProvider) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return m.vector, nil
}

func (m *mockEmbedProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.vector
	}
	return result, nil
}

func (m *mockEmbedProvider) Name() string { return "mock-embed" }

func newMocks() (*mockChatProvider, *mockEmbedProvider) {
	chat := &mockChatProvider{
		claims:    `["Luka Doncic averages 33.7 points", "Luka Doncic plays for the Lakers"]`,
		verdict:   "yes",
		questions: `["What is the average points of Luka Doncic?", "How many points does Luka score?", "What does Luka average?"]`,
	}
	embed := &mockEmbedProvider{vector: []float32{0.1, 0.2, 0.3}}
	return chat, embed
}

func TestEvaluateAllMetricsSupported(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed)

	result, err := ev.Evaluate(context.Background(), &evaluator.Input{
		Question:    "What is the average points of Luka Doncic?",
		Answer:      "Luka Doncic averages 33.7 points per game.",
		Contexts:    []string{"Player: Luka Doncic. AVG_PTS: 33.7."},
		GroundTruth: "Luka Doncic has an average of 33.7 points per game.",
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Faithfulness, 1e-9)
	assert.InDelta(t, 1.0, result.ContextRecall, 1e-9)
	// Identical embeddings give cosine similarity 1, normalized to 1.
	assert.InDelta(t, 1.0, result.AnswerRelevancy, 1e-9)
	assert.InDelta(t, 1.0, result.OverallScore, 1e-9)

	require.NotNil(t, result.Details)
	assert.Equal(t, 2, result.Details.TotalClaims)
	assert.Equal(t, 2, result.Details.SupportedClaims)
	assert.Len(t, result.Details.GeneratedQuestions, 3)
}

func TestEvaluateUnsupportedClaims(t *testing.T) {
	chat, embed := newMocks()
	chat.verdict = "no"
	ev := evaluator.New(chat, embed)

	result, err := ev.Evaluate(context.Background(), &evaluator.Input{
		Question: "What is the average points of Luka Doncic?",
		Answer:   "Luka Doncic averages 99 points per game.",
		Contexts: []string{"Player: Luka Doncic. AVG_PTS: 33.7."},
	})
	require.NoError(t, err)

	assert.Zero(t, result.Faithfulness)
	assert.Equal(t, 0, result.Details.SupportedClaims)
	assert.Equal(t, 2, result.Details.TotalClaims)
}

func TestEvaluateFaithfulnessEmptyInputs(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed)

	score, claims, supported, err := ev.EvaluateFaithfulness(context.Background(), "", []string{"ctx"})
	require.NoError(t, err)
	assert.Zero(t, score)
	assert.Nil(t, claims)
	assert.Zero(t, supported)

	score, _, _, err = ev.EvaluateFaithfulness(context.Background(), "answer", nil)
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestEvaluateFaithfulnessNoClaims(t *testing.T) {
	chat, embed := newMocks()
	chat.claims = "[]"
	ev := evaluator.New(chat, embed)

	score, claims, _, err := ev.EvaluateFaithfulness(context.Background(), "Hello!", []string{"ctx"})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Empty(t, claims)
}

func TestEvaluateFaithfulnessPlainListFallback(t *testing.T) {
	chat, embed := newMocks()
	chat.claims = "1. Luka averages 33.7 points\n2. Luka plays guard"
	ev := evaluator.New(chat, embed)

	score, claims, supported, err := ev.EvaluateFaithfulness(context.Background(), "answer", []string{"ctx"})
	require.NoError(t, err)
	assert.Len(t, claims, 2)
	assert.Equal(t, 2, supported)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestEvaluateContextRecallWithoutGroundTruth(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed)

	result, err := ev.Evaluate(context.Background(), &evaluator.Input{
		Question: "question",
		Answer:   "answer",
		Contexts: []string{"ctx"},
	})
	require.NoError(t, err)
	assert.Zero(t, result.ContextRecall)
}

func TestEvaluateMetricFailureScoresZero(t *testing.T) {
	chat, embed := newMocks()
	chat.generateErr = errors.New("model unavailable")
	ev := evaluator.New(chat, embed)

	result, err := ev.Evaluate(context.Background(), &evaluator.Input{
		Question: "question",
		Answer:   "answer",
		Contexts: []string{"ctx"},
	})
	require.NoError(t, err)
	assert.Zero(t, result.Faithfulness)
	assert.Zero(t, result.AnswerRelevancy)
	assert.Zero(t, result.OverallScore)
}

func TestWithWeights(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed, evaluator.WithWeights(evaluator.WeightConfig{
		Faithfulness: 1.0,
	}))

	result, err := ev.Evaluate(context.Background(), &evaluator.Input{
		Question: "question",
		Answer:   "answer",
		Contexts: []string{"ctx"},
	})
	require.NoError(t, err)
	// Relevancy carries zero weight, so the overall score is faithfulness.
	assert.InDelta(t, result.Faithfulness, result.OverallScore, 1e-9)
}

func TestDefaultSuite(t *testing.T) {
	cases := evaluator.DefaultSuite()
	require.Len(t, cases, 5)
	for _, c := range cases {
		assert.NotEmpty(t, c.Question)
		assert.NotEmpty(t, c.GroundTruth)
	}
}

func TestRunSuite(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed)

	var asked []string
	query := func(ctx context.Context, question string) (*model.QueryResult, error) {
		asked = append(asked, question)
		return &model.QueryResult{
			Answer: "Luka Doncic averages 33.7 points per game.",
			Intent: model.IntentStats,
			Sources: []model.DocumentSource{
				{DocumentID: "player:1", DocumentName: "Luka Doncic", Kind: "player", Content: "AVG_PTS: 33.7"},
			},
		}, nil
	}

	report, err := ev.RunSuite(context.Background(), nil, query)
	require.NoError(t, err)

	assert.Len(t, asked, 5)
	assert.Len(t, report.Entries, 5)
	assert.InDelta(t, 1.0, report.AvgFaithfulness, 1e-9)
	assert.InDelta(t, 1.0, report.AvgContextRecall, 1e-9)
	assert.Equal(t, model.IntentStats, report.Entries[0].Intent)
}

func TestRunSuiteQueryFailureAborts(t *testing.T) {
	chat, embed := newMocks()
	ev := evaluator.New(chat, embed)

	query := func(ctx context.Context, question string) (*model.QueryResult, error) {
		return nil, errors.New("milvus unavailable")
	}

	_, err := ev.RunSuite(context.Background(), evaluator.DefaultSuite(), query)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "milvus unavailable")
}
