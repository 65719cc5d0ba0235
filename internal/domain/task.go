package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reserved document keys. Everything else in a task document is payload.
const (
	fieldID       = "_id"
	fieldAltID    = "id"
	fieldEmail    = "email"
	fieldCategory = "category"
)

// Task is a single persisted to-do item. Email and Category are the only
// attributes the service reads; any other attribute (title, description,
// due dates...) lives in Fields and is stored and returned untouched.
type Task struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Category string             `bson:"category,omitempty"`
	Fields   map[string]any     `bson:",inline"`
}

// Validate reports whether the task can be stored.
func (t *Task) Validate() error {
	if t.Email == "" {
		return &ValidationError{Field: fieldEmail, Reason: "is required"}
	}
	return nil
}

// MarshalJSON flattens the payload fields next to the known attributes.
func (t Task) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(t.Fields)+3)
	for k, v := range t.Fields {
		out[k] = v
	}
	if !t.ID.IsZero() {
		out[fieldID] = t.ID
	}
	out[fieldEmail] = t.Email
	if t.Category != "" {
		out[fieldCategory] = t.Category
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a client supplied task. Any identifier in the body is
// dropped: ids are assigned by storage only.
func (t *Task) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	delete(fields, fieldID)
	delete(fields, fieldAltID)

	email, err := takeString(fields, fieldEmail)
	if err != nil {
		return err
	}
	category, err := takeString(fields, fieldCategory)
	if err != nil {
		return err
	}

	*t = Task{Email: email, Category: category, Fields: fields}
	return nil
}

// TaskPatch is a partial set of task fields merged into a stored record.
type TaskPatch map[string]any

func (p *TaskPatch) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data)
	if err != nil {
		return err
	}
	delete(fields, fieldID)
	delete(fields, fieldAltID)

	for key := range fields {
		if key == "" || strings.HasPrefix(key, "$") {
			return &ValidationError{Field: strconv.Quote(key), Reason: "is not an updatable field name"}
		}
	}
	for _, key := range []string{fieldEmail, fieldCategory} {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		if _, isString := v.(string); !isString {
			return &ValidationError{Field: key, Reason: "must be a string"}
		}
	}
	if email, ok := fields[fieldEmail]; ok && (email == nil || email == "") {
		return &ValidationError{Field: fieldEmail, Reason: "cannot be cleared"}
	}

	*p = fields
	return nil
}

// Validate rejects patches that would not change anything.
func (p TaskPatch) Validate() error {
	if len(p) == 0 {
		return &ValidationError{Field: "body", Reason: "no fields to update"}
	}
	return nil
}

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, &ValidationError{Field: "body", Reason: err.Error()}
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	for k, v := range fields {
		n, err := normalizeNumbers(k, v)
		if err != nil {
			return nil, err
		}
		fields[k] = n
	}
	return fields, nil
}

// normalizeNumbers turns json.Number values into int64 when integral and
// float64 otherwise, so they are stored as BSON numbers rather than strings.
// Numbers outside the float64 range are rejected; they could not be encoded
// back to JSON. field names the top-level key for error reporting.
func normalizeNumbers(field string, v any) (any, error) {
	switch val := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(val.String(), 10, 64); err == nil {
			return n, nil
		}
		f, err := val.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, &ValidationError{Field: field, Reason: "number out of range"}
		}
		return f, nil
	case map[string]any:
		for k, inner := range val {
			n, err := normalizeNumbers(field, inner)
			if err != nil {
				return nil, err
			}
			val[k] = n
		}
		return val, nil
	case []any:
		for i, inner := range val {
			n, err := normalizeNumbers(field, inner)
			if err != nil {
				return nil, err
			}
			val[i] = n
		}
		return val, nil
	default:
		return v, nil
	}
}

// takeString removes key from fields and returns its string value. A null
// or missing value yields "".
func takeString(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", nil
	}
	delete(fields, key)
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: key, Reason: fmt.Sprintf("must be a string, got %T", v)}
	}
	return s, nil
}
