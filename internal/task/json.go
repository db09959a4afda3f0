package task

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaJSON is the built-in JSON Schema for json data files.
//
//go:embed tasks.schema.json
var SchemaJSON []byte

const builtinSchemaURL = "tasks.schema.json"

// jsonCodec writes an array of task objects with 2-space indentation and a
// trailing newline.
type jsonCodec struct{}

func (jsonCodec) decode(data []byte) ([]Task, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return fromRecords(records)
}

func (jsonCodec) encode(tasks []Task) ([]byte, error) {
	data, err := json.MarshalIndent(toRecords(tasks), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// schemaCodec is a jsonCodec that validates every file it reads.
type schemaCodec struct {
	jsonCodec
	schema *jsonschema.Schema
}

// newSchemaCodec compiles the schema at schemaFile, or the built-in schema
// when schemaFile is empty.
func newSchemaCodec(schemaFile string) (*schemaCodec, error) {
	schema, err := CompileSchema(schemaFile)
	if err != nil {
		return nil, err
	}
	return &schemaCodec{schema: schema}, nil
}

// CompileSchema compiles the JSON Schema at path, or the built-in schema
// when path is empty.
func CompileSchema(path string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	url := builtinSchemaURL
	if path == "" {
		if err := compiler.AddResource(url, bytes.NewReader(SchemaJSON)); err != nil {
			return nil, fmt.Errorf("load built-in schema: %w", err)
		}
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid schema path: %w", err)
		}
		url = abs
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %w", err)
	}
	return schema, nil
}

func (c *schemaCodec) decode(data []byte) ([]Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if err := c.schema.Validate(doc); err != nil {
		return nil, schemaErrors(err)
	}
	return c.jsonCodec.decode(data)
}

// schemaErrors flattens a schema validation error into one ValidationError
// per failing leaf.
func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
