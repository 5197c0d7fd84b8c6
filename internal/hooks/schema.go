package hooks

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// manifestSchema constrains .metaguard/hooks.yaml. Hook names are limited to
// the events metaguard knows how to serve.
const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "hooks"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "hooks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {
            "type": "string",
            "enum": ["pre-commit", "post-checkout", "post-merge", "pre-push"]
          },
          "args": {
            "type": "array",
            "items": {"type": "string"}
          }
        }
      }
    }
  }
}`

// ValidateManifestBytes checks raw manifest YAML against the embedded
// schema, returning one message per validation error. A nil slice means the
// manifest is valid.
func ValidateManifestBytes(data []byte) ([]string, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest is not valid YAML: %w", err)
	}

	// gojsonschema speaks JSON; route the YAML document through it
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(jsonBytes),
	)
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}

	var messages []string
	for _, e := range result.Errors() {
		messages = append(messages, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return messages, nil
}
