package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"challan-ledger/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

type AgentService interface {
	InterpretChallan(ctx context.Context, naturalLanguage string, knownAgents string) (*core.IntakeResponse, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// InterpretChallan turns a dictated daily sales report into a challan draft,
// or a clarification request when the report is missing something essential.
func (a *Agent) InterpretChallan(ctx context.Context, naturalLanguage string, knownAgents string) (*core.IntakeResponse, error) {
	prompt := fmt.Sprintf(`You are a bookkeeper for a small trading company.
Your goal is to interpret a sales agent's dictated daily delivery-challan report and produce a structured draft.
Rules:
1. Split line items between the Local and Special categories as dictated; default to Local when unspecified.
2. All amounts must be plain numeric strings without grouping separators (e.g. "1500").
3. Dates are dd-mm-yyyy. Use today's date if no date is mentioned.
4. If the report matches one of the known agents below, use that exact name spelling.
5. Ask for clarification ONLY when the agent name or the sold items cannot be determined.
6. Provide a confidence score (0.0-1.0) and explain your reasoning.

Known agents:
%s

Report: %s`, knownAgents, naturalLanguage)

	// Dynamically generate the JSON schema from the Go struct
	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "challan_draft",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A structured draft of a daily delivery-challan report"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var response core.IntakeResponse
	if err := json.Unmarshal([]byte(content), &response); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}

	if response.IsClarificationRequest {
		if response.Clarification == nil {
			return nil, fmt.Errorf("clarification requested without a message")
		}
		return &response, nil
	}

	if response.Draft == nil {
		return nil, fmt.Errorf("response carried neither a draft nor a clarification")
	}

	response.Draft.Normalize()
	if err := response.Draft.Validate(); err != nil {
		return nil, fmt.Errorf("draft validation failed: %w", err)
	}

	return &response, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.IntakeResponse
	return reflector.Reflect(v)
}
