// Package jsonschema checks response bodies against a JSON Schema.
// A Schema is compiled once and can validate any number of responses.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const resourceName = "schema.json"

// ValidationErrors represents a collection of validation errors
type ValidationErrors []error

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Schema is a compiled JSON Schema.
type Schema struct {
	schema *jsonschema.Schema
}

// Compile compiles a schema document. Formats such as "email" and
// "date-time" are asserted, not just annotated.
func Compile(schema []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	if err := compiler.AddResource(resourceName, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	compiled, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &Schema{schema: compiled}, nil
}

// LoadFile reads and compiles a schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Compile(data)
}

// Validate checks body. It returns nil when body conforms, or
// ValidationErrors with one entry per failed keyword. A body that is not
// JSON is reported as a single error.
func (s *Schema) Validate(body []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	err := s.schema.Validate(doc)
	if err == nil {
		return nil
	}
	if validationErr, ok := err.(*jsonschema.ValidationError); ok {
		return leafErrors(validationErr)
	}
	return ValidationErrors{err}
}

// Validate validates jsonStr against schemaStr in one step. It reports
// whether the document conforms; err is set only for a broken schema or
// document.
func Validate(jsonStr, schemaStr string) (bool, error) {
	schema, err := Compile([]byte(schemaStr))
	if err != nil {
		return false, err
	}
	err = schema.Validate([]byte(jsonStr))
	if err == nil {
		return true, nil
	}
	if errs, ok := err.(ValidationErrors); ok && len(errs) == 1 && strings.HasPrefix(errs[0].Error(), "invalid JSON") {
		return false, errs[0]
	}
	return false, nil
}

// leafErrors flattens the cause tree to the keywords that actually failed.
func leafErrors(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		return ValidationErrors{fmt.Errorf("validation error at %s: %s", location, err.Message)}
	}

	var errs ValidationErrors
	for _, cause := range err.Causes {
		errs = append(errs, leafErrors(cause)...)
	}
	return errs
}
