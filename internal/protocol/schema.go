package protocol

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema names in merchant.yaml.
const (
	SchemaConfig      = "ConfigResponse"
	SchemaPostOrder   = "PostOrderResponse"
	SchemaOrderStatus = "OrderStatusResponse"
	SchemaRefund      = "RefundResponse"
	SchemaErrorBody   = "ErrorResponse"
)

//go:embed merchant.yaml
var merchantSpec []byte

// ErrNotJSON is returned when a reply body is not a JSON value at all.
var ErrNotJSON = errors.New("body is not JSON")

// SchemaError reports a JSON reply that does not match its schema. Field is
// the JSON pointer of the offending value; Reason tells an absent key apart
// from a key of the wrong type.
type SchemaError struct {
	Schema string
	Field  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("%s: %s (at /%s)", e.Schema, e.Reason, e.Field)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

var (
	loadOnce sync.Once
	schemas  openapi3.Schemas
	loadErr  error
)

func loadSchemas() (openapi3.Schemas, error) {
	loadOnce.Do(func() {
		doc, err := openapi3.NewLoader().LoadFromData(merchantSpec)
		if err != nil {
			loadErr = fmt.Errorf("load merchant schemas: %w", err)
			return
		}
		schemas = doc.Components.Schemas
	})
	return schemas, loadErr
}

// Decode validates body against the named schema and unmarshals it into T.
// A body that is not JSON yields ErrNotJSON; JSON that violates the schema
// yields *SchemaError.
func Decode[T any](body []byte, schema string) (T, error) {
	var out T

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return out, ErrNotJSON
	}

	all, err := loadSchemas()
	if err != nil {
		return out, err
	}
	ref, ok := all[schema]
	if !ok || ref.Value == nil {
		return out, fmt.Errorf("unknown schema %q", schema)
	}

	if err := ref.Value.VisitJSON(raw); err != nil {
		return out, toSchemaError(schema, err)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, &SchemaError{Schema: schema, Reason: err.Error(), Err: err}
	}
	return out, nil
}

// DecodeError extracts the backend error code from a non-200 reply body.
func DecodeError(body []byte) (ErrorResponse, bool) {
	resp, err := Decode[ErrorResponse](body, SchemaErrorBody)
	if err != nil {
		return ErrorResponse{}, false
	}
	return resp, true
}

func toSchemaError(schema string, err error) *SchemaError {
	var se *openapi3.SchemaError
	if errors.As(err, &se) {
		return &SchemaError{
			Schema: schema,
			Field:  strings.Join(se.JSONPointer(), "/"),
			Reason: se.Reason,
			Err:    err,
		}
	}
	return &SchemaError{Schema: schema, Reason: err.Error(), Err: err}
}
