// Package schemas checks structured model responses against JSON Schema
// documents before they are decoded into domain types.
package schemas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Violation is one rule a response broke, located by a JSONPath-style path
// such as $[0].companyName.
type Violation struct {
	Path    string
	Message string
}

// ResponseError reports a response that is not valid JSON or does not match
// its schema.
type ResponseError struct {
	Schema     string
	Malformed  bool
	Violations []Violation
}

func (e *ResponseError) Error() string {
	if e.Malformed {
		return fmt.Sprintf("%s response is not valid JSON: %s", e.Schema, e.Violations[0].Message)
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Path+": "+v.Message)
	}
	return fmt.Sprintf("%s response does not match schema: %s", e.Schema, strings.Join(parts, "; "))
}

// CompileError reports a schema document that gojsonschema rejected.
type CompileError struct {
	Name  string
	Cause error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("schema %s does not compile: %v", e.Name, e.Cause)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// Validator is a compiled schema reused across responses.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses document once.
func Compile(name, document string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, &CompileError{Name: name, Cause: err}
	}
	return &Validator{name: name, schema: schema}, nil
}

// Name returns the name given to Compile.
func (v *Validator) Name() string {
	return v.name
}

// Validate checks raw against the schema and returns a *ResponseError on
// any mismatch.
func (v *Validator) Validate(raw string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &ResponseError{
			Schema:     v.name,
			Malformed:  true,
			Violations: []Violation{{Path: "$", Message: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}

	respErr := &ResponseError{Schema: v.name}
	for _, desc := range result.Errors() {
		path := jsonPath(desc.Context().String())
		if prop, ok := desc.Details()["property"].(string); ok && desc.Type() == "required" {
			path += "." + prop
		}
		respErr.Violations = append(respErr.Violations, Violation{Path: path, Message: desc.Description()})
	}
	return respErr
}

// jsonPath turns a gojsonschema context ("(root).0.companyName") into
// $[0].companyName form.
func jsonPath(context string) string {
	var sb strings.Builder
	sb.WriteString("$")
	context = strings.TrimPrefix(strings.TrimPrefix(context, "(root)"), ".")
	if context == "" {
		return sb.String()
	}
	for _, part := range strings.Split(context, ".") {
		if _, err := strconv.Atoi(part); err == nil {
			sb.WriteString("[" + part + "]")
			continue
		}
		sb.WriteString("." + part)
	}
	return sb.String()
}
