package protocol

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidMessage is returned by Decode for payloads that do not match the
// envelope schema.
var ErrInvalidMessage = errors.New("protocol: invalid message")

// Envelope wraps a message on the wire with its event name and the origin
// that produced it, so transports can skip their own echoes.
type Envelope struct {
	Event   string  `json:"event"`
	Origin  string  `json:"origin,omitempty"`
	Message Message `json:"message"`
}

const envelopeSchemaURL = "envelope.json"

const envelopeSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["event", "message"],
  "properties": {
    "event": {"type": "string", "minLength": 1},
    "origin": {"type": "string"},
    "message": {
      "type": "object",
      "required": ["action", "uuid"],
      "properties": {
        "action": {"enum": ["add_child", "change_tag"]},
        "uuid": {"type": "string"},
        "child": {"$ref": "#/definitions/task"},
        "tags": {
          "type": "object",
          "additionalProperties": {"type": "string"}
        }
      },
      "allOf": [
        {
          "if": {"properties": {"action": {"const": "add_child"}}},
          "then": {"required": ["child"]}
        },
        {
          "if": {"properties": {"action": {"const": "change_tag"}}},
          "then": {"required": ["tags"]}
        }
      ]
    }
  },
  "definitions": {
    "task": {
      "type": "object",
      "properties": {
        "uuid": {"type": "string"},
        "id": {"type": "string"},
        "line": {"type": "string"},
        "status": {"type": "string"},
        "is_done": {"type": "boolean"},
        "children": {
          "type": ["array", "null"],
          "items": {"$ref": "#/definitions/task"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func envelopeValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(envelopeSchemaURL, strings.NewReader(envelopeSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile(envelopeSchemaURL)
	})
	return schema, schemaErr
}

// Encode serialises an envelope.
func Encode(env Envelope) ([]byte, error) {
	data, err := sonic.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode: %w", err)
	}
	return data, nil
}

// Decode parses and validates an envelope received from a peer.
func Decode(data []byte) (Envelope, error) {
	validator, err := envelopeValidator()
	if err != nil {
		return Envelope{}, fmt.Errorf("protocol: compile schema: %w", err)
	}
	var raw interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := validator.Validate(raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: %s", ErrInvalidMessage, describeValidation(err))
	}
	var env Envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return env, nil
}

func describeValidation(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	var parts []string
	collectCauses(ve, &parts)
	if len(parts) == 0 {
		return ve.Error()
	}
	return strings.Join(parts, "; ")
}

func collectCauses(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*parts = append(*parts, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, cause := range ve.Causes {
		collectCauses(cause, parts)
	}
}
