package promptgen

import "github.com/abhisek/edugen/internal/llm"

// Request is the prompt generator form. OriginalPrompt is the field name
// older clients send for the topic.
type Request struct {
	Topic          string `json:"topic,omitempty" jsonschema:"maxLength=500"`
	OriginalPrompt string `json:"originalPrompt,omitempty" jsonschema:"maxLength=500"`
	Grade          string `json:"grade,omitempty"`
	Subject        string `json:"subject,omitempty"`
	SkillLevel     string `json:"skillLevel,omitempty"`
}

var requestSchema = llm.SchemaFor[Request]("prompt-request", "Prompt generator request")

type ComplexityLevel struct {
	BloomsLevel   string  `json:"bloomsLevel"`
	CognitiveLoad float64 `json:"cognitiveLoad"`
}

type Explanation struct {
	Explanation     string          `json:"explanation"`
	FocusAreas      []string        `json:"focusAreas"`
	ComplexityLevel ComplexityLevel `json:"complexityLevel"`
}

type Ratings struct {
	AverageRating *float64 `json:"averageRating,omitempty"`
	TotalRatings  *float64 `json:"totalRatings,omitempty"`
}

type RefinedPrompt struct {
	PromptText  string      `json:"promptText"`
	Explanation Explanation `json:"explanation"`
	Ratings     *Ratings    `json:"ratings,omitempty"`
}

// Output is what the model produces.
type Output struct {
	OriginalPrompt string          `json:"originalPrompt"`
	RefinedPrompts []RefinedPrompt `json:"refinedPrompts"`
}

type Metadata struct {
	GeneratedAt      string `json:"generatedAt"`
	Version          string `json:"version"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
}

var bloomsLevels = []string{"Knowledge", "Comprehension", "Application", "Analysis", "Synthesis", "Evaluation"}

func refinedPromptsDefinition() map[string]any {
	return llm.ArrLen(llm.Obj(map[string]any{
		"promptText": llm.StrLen("The prompt as a teacher would pose it", 10, 1000),
		"explanation": llm.Obj(map[string]any{
			"explanation": llm.StrLen("The pedagogical approach behind this version", 1, 500),
			"focusAreas":  llm.ArrLen(map[string]any{"type": "string"}, 1, 0),
			"complexityLevel": llm.Obj(map[string]any{
				"bloomsLevel":   llm.Enum("", bloomsLevels...),
				"cognitiveLoad": llm.NumRange("1 (light) to 5 (heavy)", 1, 5),
			}, "bloomsLevel", "cognitiveLoad"),
		}, "explanation", "focusAreas", "complexityLevel"),
		"ratings": llm.Obj(map[string]any{
			"averageRating": llm.NumRange("", 0, 5),
			"totalRatings":  llm.NumRange("", 0, 1e9),
		}),
	}, "promptText", "explanation"), 3, 3)
}

// Schema is the set of refined prompts the model must produce.
var Schema = &llm.Schema{
	Name:        "refined-prompts",
	Description: "Three refined versions of an educational prompt",
	Definition: llm.Obj(map[string]any{
		"originalPrompt": llm.StrLen("The topic or prompt as given", 1, 500),
		"refinedPrompts": refinedPromptsDefinition(),
	}, "originalPrompt", "refinedPrompts"),
}

// ResponseSchema is the endpoint body without the generation block.
var ResponseSchema = &llm.Schema{
	Name: "prompt-response",
	Definition: llm.Obj(map[string]any{
		"originalPrompt": llm.StrLen("", 1, 500),
		"refinedPrompts": refinedPromptsDefinition(),
		"metadata": llm.Obj(map[string]any{
			"generatedAt":      llm.DateTime(""),
			"version":          llm.StrLen("", 1, 0),
			"processingTimeMs": map[string]any{"type": "integer", "minimum": 0},
		}, "generatedAt", "version", "processingTimeMs"),
	}, "originalPrompt", "refinedPrompts", "metadata"),
}
