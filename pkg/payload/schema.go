package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchema is advisory: it describes the shapes we know how to read,
// covering both current and legacy field names. Violations produce warnings
// only; normalization itself never depends on validation passing.
const payloadSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "projectPath": {"type": "string"},
    "modules": {"type": "array", "items": {"type": "object"}},
    "files": {"type": "array", "items": {"type": "object"}},
    "functions": {"type": "array", "items": {"type": "object"}},
    "dependencies": {"type": "array", "items": {"type": "object"}},
    "edges": {"type": "array", "items": {"type": "object"}},
    "frameworks": {"type": "array", "items": {"type": "object"}},
    "techStack": {"type": "array", "items": {"type": "object"}},
    "tech_stack": {"type": "array", "items": {"type": "object"}},
    "contributors": {"type": "array", "items": {"type": "object"}},
    "authorContributions": {"type": "array", "items": {"type": "object"}},
    "fileChanges": {"type": "array", "items": {"type": "object"}},
    "fileHotspots": {"type": "array", "items": {"type": "object"}},
    "commits": {"type": "array", "items": {"type": "object"}},
    "commitHistory": {"type": "array", "items": {"type": "object"}},
    "commit_timeline": {"type": "array", "items": {"type": "object"}}
  }
}`

// Validate checks a raw payload against the advisory schema and returns
// human-readable warnings. A nil/empty return means no findings; errors in
// the validation machinery itself surface as a single warning.
func Validate(data []byte) []string {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(payloadSchema))
	if err != nil {
		return []string{"schema unavailable: " + err.Error()}
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("payload.json", schemaDoc); err != nil {
		return []string{"schema unavailable: " + err.Error()}
	}
	schema, err := compiler.Compile("payload.json")
	if err != nil {
		return []string{"schema unavailable: " + err.Error()}
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return []string{"payload is not valid JSON: " + err.Error()}
	}

	if err := schema.Validate(value); err != nil {
		var warnings []string
		for _, line := range strings.Split(err.Error(), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				warnings = append(warnings, line)
			}
		}
		return warnings
	}
	return nil
}
