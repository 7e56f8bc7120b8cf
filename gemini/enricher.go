package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/zinets/zinets"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// Provider identifies records produced by this package.
	Provider = "Google"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.5-flash"

	// DefaultLanguage is the language explanations are written in.
	DefaultLanguage = "English"
)

// Ensure Enricher implements zinets.Enricher at compile time.
var _ zinets.Enricher = (*Enricher)(nil)

// Enricher implements zinets.Enricher using Google Gemini.
type Enricher struct {
	client   *genai.Client
	model    string
	language string
	limiter  *rate.Limiter
}

// NewEnricher creates a new Enricher. Requests are paced to rps per second;
// a non-positive rps disables pacing.
func NewEnricher(client *genai.Client, model, language string, rps float64) *Enricher {
	if model == "" {
		model = DefaultModel
	}
	if language == "" {
		language = DefaultLanguage
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Enricher{
		client:   client,
		model:    model,
		language: language,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Model returns the model name requests are sent to.
func (e *Enricher) Model() string {
	return e.model
}

// Enrich asks the model about all tokens in a single request. Tokens whose
// answer was incomplete are left out of the result.
func (e *Enricher) Enrich(ctx context.Context, tokens []string) (map[string]*zinets.Character, error) {
	if len(tokens) == 0 {
		return map[string]*zinets.Character{}, nil
	}
	for _, token := range tokens {
		if token == "" {
			return nil, zinets.Errorf(zinets.EINVALID, "token required")
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(tokens, e.language)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if result == nil {
		return nil, zinets.Errorf(zinets.EINTERNAL, "gemini returned nil result")
	}
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, zinets.Errorf(zinets.EINTERNAL, "gemini blocked the response for safety reasons")
	}

	records := ParseResponse(result.Text(), tokens)
	for _, c := range records {
		c.Provider = Provider
		c.Model = e.model
	}
	return records, nil
}

const basePrompt = `For each character, provide the following information in this format:
- pinyin: the pronunciation with tone marks
- meaning: main meanings
- composition: how character is structurally composed from radicals and parts
- phrases: 5 common phrases with pinyin and meaning

Ensure explanation texts are in the target language of '%s'.

Format character's information like this:

Character: [character]
pinyin: [pronunciation]
meaning: [meanings]
composition: [explanation]
phrases: [phrase1]<br>[phrase2]<br>[phrase3]<br>[phrase4]<br>[phrase5]

Start each character with "Character:" on a new line.
Do not include any other formatting, explanations, or markdown.
`

// BuildPrompt builds the request for tokens with explanations in language.
func BuildPrompt(tokens []string, language string) string {
	if language == "" {
		language = DefaultLanguage
	}

	var sb strings.Builder
	if len(tokens) == 1 {
		fmt.Fprintf(&sb, "Generate information about this Chinese character '%s'", tokens[0])
	} else {
		quoted := make([]string, len(tokens))
		for i, token := range tokens {
			quoted[i] = "'" + token + "'"
		}
		fmt.Fprintf(&sb, "Generate information about these Chinese characters: %s", strings.Join(quoted, ", "))
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, basePrompt, language)
	return sb.String()
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	topP := float32(0.95)
	topK := float32(40)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a Chinese language expert. Answer in the exact plain-text format requested.",
			}},
		},
		Temperature:     &temp,
		TopP:            &topP,
		TopK:            &topK,
		CandidateCount:  1,
		MaxOutputTokens: 8192,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
}
