package llm

import (
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

// SchemaType is the JSON type of a schema node.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"
)

// Schema describes the shape a structured response must take. The same
// definition constrains the model (as a genai response schema) and validates
// what comes back (as a JSON Schema document).
type Schema struct {
	Type        SchemaType
	Description string
	Enum        []string
	Items       *Schema
	Properties  map[string]*Schema
	Required    []string
}

// String returns a string node.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// ArrayOf returns an array node whose elements match items.
func ArrayOf(items *Schema, description string) *Schema {
	return &Schema{Type: TypeArray, Items: items, Description: description}
}

// Object returns an object node. Every listed property is required.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: properties, Required: required}
}

// Genai converts the schema into the provider's response schema.
func (s *Schema) Genai() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
	}
	switch s.Type {
	case TypeString:
		out.Type = genai.TypeString
	case TypeInteger:
		out.Type = genai.TypeInteger
	case TypeBoolean:
		out.Type = genai.TypeBoolean
	case TypeArray:
		out.Type = genai.TypeArray
		out.Items = s.Items.Genai()
	case TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.Genai()
		}
	}
	return out
}

// JSONSchema renders the schema as a JSON Schema document.
func (s *Schema) JSONSchema() (string, error) {
	if s == nil {
		return "", fmt.Errorf("schema is nil")
	}
	data, err := json.Marshal(s.jsonSchemaNode())
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}

func (s *Schema) jsonSchemaNode() map[string]any {
	node := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		node["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		node["enum"] = s.Enum
	}
	if s.Items != nil {
		node["items"] = s.Items.jsonSchemaNode()
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = prop.jsonSchemaNode()
		}
		node["properties"] = props
	}
	if len(s.Required) > 0 {
		node["required"] = s.Required
	}
	return node
}
