package decision

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// compiled once at init; the schema is embedded and cannot change at runtime.
var schema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("decision: compile embedded schema: %v", err))
	}
	return s
}

// FormatInstructions renders the schema into the instruction block the
// prompt embeds, telling the service exactly what shape to emit.
func FormatInstructions() string {
	return "The output must be a single JSON object that conforms to the JSON schema below. " +
		"Do not wrap it in markdown, do not add commentary, and do not omit any required key.\n\n" +
		"```json\n" + schemaJSON + "```"
}
