// Package evaluator scores chatbot answers against their retrieved context.
//
// Three metrics are computed per answer:
//   - Faithfulness: how many factual claims in the answer are supported by
//     the retrieved context.
//   - AnswerRelevancy: semantic similarity between the user's question and
//     questions regenerated from the answer.
//   - ContextRecall: how much of a reference answer can be derived from the
//     retrieved context. Requires a ground truth and is skipped without one.
//
// Usage:
//
//	ev := evaluator.New(chatProvider, embedProvider)
//	result, err := ev.Evaluate(ctx, &evaluator.Input{
//	    Question: "What is the average points of Luka Doncic?",
//	    Answer:   "Luka Doncic averages 33.7 points per game.",
//	    Contexts: []string{"Player: Luka Doncic ... AVG_PTS: 33.7 ..."},
//	})
package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/pkg/textutil"
	"github.com/kaannerenn/nba-fantasy-chatbot/pkg/llm"
)

// Input holds one answer to evaluate.
type Input struct {
	// Question is the original user question.
	Question string `json:"question"`

	// Answer is the pipeline's generated answer.
	Answer string `json:"answer"`

	// Contexts are the retrieved document contents the answer was built from.
	Contexts []string `json:"contexts"`

	// GroundTruth is an optional reference answer used for ContextRecall.
	GroundTruth string `json:"ground_truth,omitempty"`
}

// Result holds the computed scores, each in [0, 1].
type Result struct {
	Faithfulness    float64 `json:"faithfulness"`
	AnswerRelevancy float64 `json:"answer_relevancy"`
	ContextRecall   float64 `json:"context_recall"`

	// OverallScore is the weighted average of the metrics that produced
	// a non-zero score.
	OverallScore float64 `json:"overall_score"`

	Details *Details `json:"details,omitempty"`
}

// Details exposes the intermediate evaluation artifacts.
type Details struct {
	// Claims extracted from the answer.
	Claims []string `json:"claims,omitempty"`

	// SupportedClaims counts claims the context supports.
	SupportedClaims int `json:"supported_claims,omitempty"`

	// TotalClaims counts all extracted claims.
	TotalClaims int `json:"total_claims,omitempty"`

	// GeneratedQuestions are the questions regenerated from the answer.
	GeneratedQuestions []string `json:"generated_questions,omitempty"`
}

// WeightConfig weights each metric in the overall score.
type WeightConfig struct {
	Faithfulness    float64
	AnswerRelevancy float64
	ContextRecall   float64
}

// DefaultWeights favors faithfulness: a fantasy assistant that invents
// stat lines is worse than one that answers slightly off-topic.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Faithfulness:    0.4,
		AnswerRelevancy: 0.3,
		ContextRecall:   0.3,
	}
}

// Evaluator scores answers using an LLM judge and an embedding provider.
type Evaluator struct {
	chatProvider  llm.ChatProvider
	embedProvider llm.EmbeddingProvider
	weights       WeightConfig
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWeights overrides the metric weights.
func WithWeights(weights WeightConfig) Option {
	return func(e *Evaluator) {
		e.weights = weights
	}
}

// New creates an Evaluator.
func New(chatProvider llm.ChatProvider, embedProvider llm.EmbeddingProvider, opts ...Option) *Evaluator {
	e := &Evaluator{
		chatProvider:  chatProvider,
		embedProvider: embedProvider,
		weights:       DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate computes all applicable metrics for one input. A metric that
// fails is logged and scored zero rather than failing the whole evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, input *Input) (*Result, error) {
	result := &Result{
		Details: &Details{},
	}

	faithfulness, claims, supportedCount, err := e.EvaluateFaithfulness(ctx, input.Answer, input.Contexts)
	if err != nil {
		logger.Warnf("Faithfulness evaluation failed: %v", err)
	} else {
		result.Faithfulness = faithfulness
		result.Details.Claims = claims
		result.Details.SupportedClaims = supportedCount
		result.Details.TotalClaims = len(claims)
	}

	relevancy, questions, err := e.EvaluateAnswerRelevancy(ctx, input.Answer, input.Question)
	if err != nil {
		logger.Warnf("Answer relevancy evaluation failed: %v", err)
	} else {
		result.AnswerRelevancy = relevancy
		result.Details.GeneratedQuestions = questions
	}

	if input.GroundTruth != "" {
		recall, err := e.EvaluateContextRecall(ctx, input.Contexts, input.GroundTruth)
		if err != nil {
			logger.Warnf("Context recall evaluation failed: %v", err)
		} else {
			result.ContextRecall = recall
		}
	}

	result.OverallScore = e.calculateOverallScore(result)
	return result, nil
}

// EvaluateFaithfulness extracts factual claims from the answer and verifies
// each against the combined context. An answer with no claims is faithful
// by definition.
func (e *Evaluator) EvaluateFaithfulness(ctx context.Context, answer string, contexts []string) (float64, []string, int, error) {
	if answer == "" || len(contexts) == 0 {
		return 0, nil, 0, nil
	}

	claims, err := e.extractClaims(ctx, answer)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("failed to extract claims: %w", err)
	}
	if len(claims) == 0 {
		return 1.0, nil, 0, nil
	}

	combinedContext := strings.Join(contexts, "\n\n")
	supportedCount := 0
	for _, claim := range claims {
		supported, err := e.verifyClaimAgainstContext(ctx, claim, combinedContext)
		if err != nil {
			logger.Warnf("Claim verification failed: %v", err)
			continue
		}
		if supported {
			supportedCount++
		}
	}

	return float64(supportedCount) / float64(len(claims)), claims, supportedCount, nil
}

// EvaluateAnswerRelevancy regenerates candidate questions from the answer
// and measures their average embedding similarity to the original question.
func (e *Evaluator) EvaluateAnswerRelevancy(ctx context.Context, answer, question string) (float64, []string, error) {
	if answer == "" || question == "" {
		return 0, nil, nil
	}

	generatedQuestions, err := e.generateQuestionsFromAnswer(ctx, answer, 3)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	if len(generatedQuestions) == 0 {
		return 0, nil, nil
	}

	questionEmbed, err := e.embedProvider.EmbedSingle(ctx, question)
	if err != nil {
		return 0, generatedQuestions, fmt.Errorf("failed to embed question: %w", err)
	}

	genEmbeds, err := e.embedProvider.Embed(ctx, generatedQuestions)
	if err != nil {
		return 0, generatedQuestions, fmt.Errorf("failed to embed generated questions: %w", err)
	}

	var totalSimilarity float64
	for _, genEmbed := range genEmbeds {
		totalSimilarity += textutil.CosineSimilarity(questionEmbed, genEmbed)
	}

	avgSimilarity := totalSimilarity / float64(len(genEmbeds))
	return textutil.NormalizeCosineSimilarity(avgSimilarity), generatedQuestions, nil
}

// EvaluateContextRecall extracts claims from the reference answer and checks
// how many the retrieved context can support.
func (e *Evaluator) EvaluateContextRecall(ctx context.Context, contexts []string, groundTruth string) (float64, error) {
	if len(contexts) == 0 || groundTruth == "" {
		return 0, nil
	}

	claims, err := e.extractClaims(ctx, groundTruth)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from ground truth: %w", err)
	}
	if len(claims) == 0 {
		return 1.0, nil
	}

	combinedContext := strings.Join(contexts, "\n\n")
	supportedCount := 0
	for _, claim := range claims {
		supported, err := e.verifyClaimAgainstContext(ctx, claim, combinedContext)
		if err != nil {
			continue
		}
		if supported {
			supportedCount++
		}
	}

	return float64(supportedCount) / float64(len(claims)), nil
}

func (e *Evaluator) extractClaims(ctx context.Context, text string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract every factual claim from the text below. Each claim must be a standalone, verifiable statement.

Text:
%s

Return the claims as a JSON array of strings, for example:
["claim 1", "claim 2", "claim 3"]

Return ONLY the JSON array, nothing else.`, text)

	response, err := e.chatProvider.Generate(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	claims, err := textutil.ParseJSONArray(response.Content)
	if err != nil {
		// Models sometimes answer with a plain list instead of JSON.
		claims = textutil.SplitByLines(response.Content, 5)
	}
	return claims, nil
}

func (e *Evaluator) verifyClaimAgainstContext(ctx context.Context, claim, context string) (bool, error) {
	prompt := fmt.Sprintf(`Determine whether the claim below is supported by, or can be derived from, the given context.

Claim: %s

Context:
%s

Answer ONLY "yes" or "no".`, claim, context)

	response, err := e.chatProvider.Generate(ctx, prompt, "")
	if err != nil {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(response.Content))
	return strings.Contains(answer, "yes") || strings.Contains(answer, "true"), nil
}

func (e *Evaluator) generateQuestionsFromAnswer(ctx context.Context, answer string, count int) ([]string, error) {
	prompt := fmt.Sprintf(`Given the answer below, generate %d questions that could have produced it.

Answer:
%s

Return the questions as a JSON array of strings, for example:
["question 1?", "question 2?", "question 3?"]

Return ONLY the JSON array, nothing else.`, count, answer)

	response, err := e.chatProvider.Generate(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	questions, err := textutil.ParseJSONArray(response.Content)
	if err != nil {
		questions = textutil.SplitByLines(response.Content, 5)
	}
	return questions, nil
}

func (e *Evaluator) calculateOverallScore(result *Result) float64 {
	var totalWeight, weightedSum float64

	if result.Faithfulness > 0 {
		weightedSum += result.Faithfulness * e.weights.Faithfulness
		totalWeight += e.weights.Faithfulness
	}
	if result.AnswerRelevancy > 0 {
		weightedSum += result.AnswerRelevancy * e.weights.AnswerRelevancy
		totalWeight += e.weights.AnswerRelevancy
	}
	if result.ContextRecall > 0 {
		weightedSum += result.ContextRecall * e.weights.ContextRecall
		totalWeight += e.weights.ContextRecall
	}

	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}
