// Package schemas validates backend response bodies against the embedded
// JSON Schemas of the dashboard entities before they are decoded.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed entities/*.schema.json
var entityFS embed.FS

// Entity names one embedded schema.
type Entity string

// Entities with an embedded schema.
const (
	User         Entity = "user"
	Job          Entity = "job"
	Jobs         Entity = "jobs"
	Resume       Entity = "resume"
	JobResumes   Entity = "job_resumes"
	DriveFolders Entity = "drive_folders"
)

// dependencies lists the schemas an entity schema references by $id.
var dependencies = map[Entity][]Entity{
	Jobs:       {Job},
	JobResumes: {Resume},
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Entity Entity
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Entity != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Entity))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

type compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

var (
	compiledMu sync.Mutex
	cache      = map[Entity]*compiled{}
)

func schemaPath(e Entity) string {
	return "entities/" + string(e) + ".schema.json"
}

func readSchema(e Entity) (string, error) {
	data, err := entityFS.ReadFile(schemaPath(e))
	if err != nil {
		return "", &SchemaLoadError{Path: schemaPath(e), Message: "schema not embedded", Cause: err}
	}
	return string(data), nil
}

// load compiles the schema for e once and caches it.
func load(e Entity) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	c, ok := cache[e]
	if !ok {
		c = &compiled{}
		cache[e] = c
	}
	compiledMu.Unlock()

	c.once.Do(func() {
		c.schema, c.err = compile(e)
	})
	return c.schema, c.err
}

func compile(e Entity) (*gojsonschema.Schema, error) {
	sl := gojsonschema.NewSchemaLoader()
	for _, dep := range dependencies[e] {
		content, err := readSchema(dep)
		if err != nil {
			return nil, err
		}
		if err := sl.AddSchemas(gojsonschema.NewStringLoader(content)); err != nil {
			return nil, &SchemaLoadError{Path: schemaPath(dep), Message: "failed to register dependency", Cause: err}
		}
	}

	content, err := readSchema(e)
	if err != nil {
		return nil, err
	}
	schema, err := sl.Compile(gojsonschema.NewStringLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Path: schemaPath(e), Message: "failed to compile", Cause: err}
	}
	return schema, nil
}

// Validate checks a JSON document against the schema of the given entity.
// A malformed document is reported as an error wrapping the parse failure;
// a well-formed document that violates the schema yields *ValidationError.
func Validate(e Entity, document []byte) error {
	schema, err := load(e)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("invalid %s document: %w", e, err)
	}
	return collect(e, result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return collect("", result)
}

func collect(e Entity, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Entity: e,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
