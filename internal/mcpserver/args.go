package mcpserver

import (
	"fmt"
	"math"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Argument readers run after schema validation, so type mismatches here mean
// the schema and the reader disagree; they still fail safe with a
// validation error rather than panicking.

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", validationError(fmt.Sprintf("missing properties: '%s'", key))
	}
	s, ok := v.(string)
	if !ok {
		return "", validationError(fmt.Sprintf("'%s' must be a string", key))
	}
	return s, nil
}

// argIID reads a numeric project-scoped IID. JSON numbers arrive as
// float64; values with a fractional part are rejected rather than
// truncated.
func argIID(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, validationError(fmt.Sprintf("missing properties: '%s'", key))
	}
	f, ok := v.(float64)
	if !ok {
		return 0, validationError(fmt.Sprintf("'%s' must be a number", key))
	}
	if f != math.Trunc(f) {
		return 0, validationError(fmt.Sprintf("'%s' must be an integer", key))
	}
	return int(f), nil
}

// argLine reads a line number that the tool contract carries as a string.
func argLine(args map[string]any, key string) (int, error) {
	s, err := argString(args, key)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(s)
	if convErr != nil {
		return 0, validationError(fmt.Sprintf("'%s' must be a numeric string", key))
	}
	return n, nil
}

func argVerbose(args map[string]any) bool {
	v, ok := args["verbose"].(bool)
	return ok && v
}

// schemaErrorDetail flattens a validation failure into the single most
// specific cause, which names the offending property.
func schemaErrorDetail(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	leaf := firstLeafError(ve)
	if leaf.InstanceLocation != "" {
		return fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message)
	}
	return leaf.Message
}

func firstLeafError(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
