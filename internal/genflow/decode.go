package genflow

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValidateOptions tunes Validate for request checking.
type ValidateOptions struct {
	// RejectBlankText fails required text fields holding only whitespace.
	RejectBlankText bool
}

// Validate checks v against d and returns a *FieldError for the first
// non-conforming field. Fields not declared in d are ignored.
func Validate(d *Descriptor, v map[string]any, opts ValidateOptions) error {
	if d == nil {
		return errors.New("nil descriptor")
	}
	return validateFields(d.Fields, v, "", opts)
}

func validateFields(fields []Field, obj map[string]any, prefix string, opts ValidateOptions) error {
	for _, f := range fields {
		path := f.Name
		if prefix != "" {
			path = prefix + "." + f.Name
		}
		raw, present := obj[f.Name]
		if !present || raw == nil {
			if f.Optional {
				continue
			}
			if !present {
				return &FieldError{Path: path, Reason: "required field is missing"}
			}
			return &FieldError{Path: path, Reason: "required field is null"}
		}
		if err := validateValue(f, raw, path, opts); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(f Field, v any, path string, opts ValidateOptions) error {
	switch f.Kind {
	case KindText:
		s, ok := v.(string)
		if !ok {
			return mismatch(f.Kind, v, path)
		}
		if opts.RejectBlankText && !f.Optional && strings.TrimSpace(s) == "" {
			return &FieldError{Path: path, Reason: "text must not be blank"}
		}
	case KindNumber:
		if _, ok := v.(float64); !ok {
			return mismatch(f.Kind, v, path)
		}
	case KindBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch(f.Kind, v, path)
		}
	case KindList:
		items, ok := v.([]any)
		if !ok {
			return mismatch(f.Kind, v, path)
		}
		if f.Elem == nil {
			return nil
		}
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if item == nil {
				return &FieldError{Path: itemPath, Reason: "list element is null"}
			}
			if err := validateValue(*f.Elem, item, itemPath, opts); err != nil {
				return err
			}
		}
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(f.Kind, v, path)
		}
		return validateFields(f.Fields, m, path, opts)
	default:
		return &FieldError{Path: path, Reason: fmt.Sprintf("undeclared kind %d", f.Kind)}
	}
	return nil
}

// project keeps only the declared keys of obj, recursing into objects and lists.
func project(fields []Field, obj map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := obj[f.Name]; ok {
			out[f.Name] = projectValue(f, v)
		}
	}
	return out
}

func projectValue(f Field, v any) any {
	switch f.Kind {
	case KindObject:
		if m, ok := v.(map[string]any); ok {
			return project(f.Fields, m)
		}
	case KindList:
		items, ok := v.([]any)
		if !ok || f.Elem == nil {
			return v
		}
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = projectValue(*f.Elem, item)
		}
		return out
	}
	return v
}

func mismatch(want Kind, got any, path string) error {
	return &FieldError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", want, kindName(got))}
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "text"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// parseObject reads raw as a single JSON object.
func parseObject(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errNoReply
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("reply is not a JSON object: %w", err)
	}
	if obj == nil {
		return nil, errors.New("reply is null")
	}
	return obj, nil
}

// Decode validates raw against d and unmarshals it into T.
// Any mismatch is a decoding fault naming the offending field.
func Decode[T any](d *Descriptor, raw []byte) (T, error) {
	var zero T
	obj, err := parseObject(raw)
	if err != nil {
		return zero, newFault(FaultDecoding, err)
	}
	if err := Validate(d, obj, ValidateOptions{}); err != nil {
		return zero, newFault(FaultDecoding, err)
	}
	// Only declared keys are decoded: encoding/json folds case, so an
	// undeclared "NETSAVINGS" would otherwise overwrite "netSavings".
	validated, err := json.Marshal(project(d.Fields, obj))
	if err != nil {
		return zero, newFault(FaultDecoding, fmt.Errorf("encode %s: %w", d.Name, err))
	}
	var out T
	if err := json.Unmarshal(validated, &out); err != nil {
		return zero, newFault(FaultDecoding, fmt.Errorf("decode %s: %w", d.Name, err))
	}
	return out, nil
}

// ValidateInput checks a request value against d before any prompt is built.
// Required text must not be blank and numbers must be finite.
func ValidateInput(d *Descriptor, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return newFault(FaultValidation, fmt.Errorf("encode %s: %w", d.Name, err))
	}
	obj, err := parseObject(raw)
	if err != nil {
		return newFault(FaultValidation, err)
	}
	if err := Validate(d, obj, ValidateOptions{RejectBlankText: true}); err != nil {
		return newFault(FaultValidation, err)
	}
	return nil
}
