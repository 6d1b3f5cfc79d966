package decision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseError reports a service response that does not conform to the
// decision schema. Violations lists every broken constraint.
type ParseError struct {
	Violations []string
	Err        error
}

func (e *ParseError) Error() string {
	if len(e.Violations) > 0 {
		return "decision response does not match schema: " + strings.Join(e.Violations, "; ")
	}
	if e.Err != nil {
		return fmt.Sprintf("decision response is not valid JSON: %v", e.Err)
	}
	return "decision response does not match schema"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse validates raw response text against the decision schema and decodes
// it into a Result. Validation is strict: missing required fields and
// out-of-enum values fail, they are never coerced. Every violation is
// reported, not just the first.
func Parse(raw string) (Result, error) {
	cleaned := stripFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return Result{}, &ParseError{Violations: []string{"response is empty"}}
	}

	docLoader := gojsonschema.NewStringLoader(cleaned)
	validation, err := schema.Validate(docLoader)
	if err != nil {
		return Result{}, &ParseError{Err: err}
	}
	if !validation.Valid() {
		violations := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			violations = append(violations, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return Result{}, &ParseError{Violations: violations}
	}

	var res Result
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return Result{}, &ParseError{Err: err}
	}
	if res.AppliedRules == nil {
		res.AppliedRules = []string{}
	}
	return res, nil
}

// stripFences removes a surrounding markdown code fence if the service
// wrapped its JSON despite instructions. The JSON inside is still validated
// strictly.
func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
