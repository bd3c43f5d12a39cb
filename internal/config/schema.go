package config

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ConfigSchema is the JSON schema for the roadscout configuration file.
// Structural validation runs before unmarshaling so typos surface as
// schema errors instead of silently ignored keys.
const ConfigSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "providers": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "enum": ["anthropic", "openai", "gemini"]},
          "model": {"type": "string"},
          "api_key_env": {"type": "string"}
        }
      }
    },
    "generation": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "temperature": {"type": "number", "minimum": 0, "maximum": 1},
        "max_tokens": {"type": "integer", "minimum": 1}
      }
    },
    "search": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "mode": {"type": "string", "enum": ["catalog", "browser"]},
        "control_url": {"type": "string"},
        "result_timeout_seconds": {"type": "integer", "minimum": 1}
      }
    },
    "route": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "nominatim_url": {"type": "string"},
        "user_agent": {"type": "string"}
      }
    },
    "summary": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "degrade_on_upstream": {"type": "boolean"}
      }
    },
    "timeouts": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "search_seconds": {"type": "integer", "minimum": 1},
        "route_seconds": {"type": "integer", "minimum": 1},
        "generate_seconds": {"type": "integer", "minimum": 1}
      }
    },
    "logging": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"type": "string"},
        "file": {"type": "string"},
        "console": {"type": "boolean"},
        "pretty": {"type": "boolean"}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(ConfigSchema)

// validateSchema validates a raw config document against ConfigSchema.
func validateSchema(data []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var errMsg string
		for i, err := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += err.String()
		}
		return fmt.Errorf("schema validation errors: %s", errMsg)
	}

	return nil
}
