package vapi

import (
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/prompts"
)

const (
	endCallMessage        = "No worries, have a good one!"
	silenceTimeoutSeconds = 15
	maxDurationSeconds    = 300
)

// AssistantResponse answers an assistant-request.
type AssistantResponse struct {
	Assistant Assistant `json:"assistant"`
}

// Assistant is the transient assistant definition for one call.
type Assistant struct {
	Model                  Model       `json:"model"`
	Voice                  Voice       `json:"voice"`
	FirstMessage           string      `json:"firstMessage"`
	EndCallMessage         string      `json:"endCallMessage"`
	Transcriber            Transcriber `json:"transcriber"`
	SilenceTimeoutSeconds  int         `json:"silenceTimeoutSeconds"`
	MaxDurationSeconds     int         `json:"maxDurationSeconds"`
	EndCallFunctionEnabled bool        `json:"endCallFunctionEnabled"`
}

// Model selects the language model and carries the system prompt and tools.
type Model struct {
	Provider      string     `json:"provider"`
	Model         string     `json:"model"`
	Temperature   float64    `json:"temperature"`
	SystemMessage string     `json:"systemMessage"`
	Functions     []Function `json:"functions"`
}

// Function is a tool the assistant may call mid-conversation.
type Function struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parameters  ObjectSchema `json:"parameters"`
}

// ObjectSchema is the JSON Schema object describing a function's arguments.
type ObjectSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required"`
}

// PropertySchema describes one function argument.
type PropertySchema struct {
	Type        string   `json:"type"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description"`
}

// Voice is the text-to-speech configuration.
type Voice struct {
	Provider        string  `json:"provider"`
	VoiceID         string  `json:"voiceId"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarityBoost"`
}

// Transcriber is the speech-to-text configuration.
type Transcriber struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Language string `json:"language"`
}

// BuildAssistant assembles the assistant for a call to op's number.
func BuildAssistant(op operators.Operator) Assistant {
	return Assistant{
		Model: Model{
			Provider:      "openai",
			Model:         "gpt-4o-mini",
			Temperature:   0.7,
			SystemMessage: prompts.BuildSystemPrompt(op),
			Functions:     []Function{reportFunction()},
		},
		Voice: Voice{
			Provider:        "eleven-labs",
			VoiceID:         "pFZP5JQG7iQjIQuC4Bku",
			Stability:       0.6,
			SimilarityBoost: 0.8,
		},
		FirstMessage:   prompts.BuildFirstMessage(op),
		EndCallMessage: endCallMessage,
		Transcriber: Transcriber{
			Provider: "deepgram",
			Model:    "nova-2",
			Language: "en-AU",
		},
		SilenceTimeoutSeconds:  silenceTimeoutSeconds,
		MaxDurationSeconds:     maxDurationSeconds,
		EndCallFunctionEnabled: true,
	}
}

func reportFunction() Function {
	str := func(desc string) PropertySchema { return PropertySchema{Type: "string", Description: desc} }
	return Function{
		Name:        prompts.ReportFunctionName,
		Description: "Submit the call summary report when the call is ending with a real customer",
		Parameters: ObjectSchema{
			Type: "object",
			Properties: map[string]PropertySchema{
				"caller_name":      str("Customer name"),
				"caller_phone":     str("Customer phone number"),
				"suburb":           str("Customer suburb/location"),
				"job_description":  str("What job they need done, be specific"),
				"urgency":          {Type: "string", Enum: []string{"normal", "soon", "emergency"}, Description: "How urgent is the job"},
				"preferred_timing": str("When the customer wants the work done"),
				"notes":            str("Any extra notes from the call"),
				"is_spam":          {Type: "boolean", Description: "Whether the call was spam/sales"},
			},
			Required: []string{"caller_name", "caller_phone", "job_description", "urgency", "is_spam"},
		},
	}
}
