// Package validation evaluates request payloads against declarative
// schemas. A schema is a rule table: every field carries a type, its
// requiredness, an optional default and an ordered list of ozzo-validation
// rules, each with its own message. Evaluation never stops at the first
// failure; every violated rule of every field is reported.
package validation

import (
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/apperror"
)

// Type is the expected JSON shape of a field
type Type int

const (
	TypeString Type = iota
	TypeEmail
	TypeInteger
	TypeBoolean
	TypeDate
	TypeID
)

// Check is one rule of the table. The rule runs against the converted
// value; Message overrides the rule's own error text when set.
type Check struct {
	Rule    ozzo.Rule
	Message string
}

// Field describes one payload key
type Field struct {
	Name     string
	Type     Type
	Required bool
	Nullable bool
	// NoTrim keeps surrounding whitespace (secrets)
	NoTrim  bool
	Default func() interface{}
	Checks  []Check

	TypeMessage     string
	RequiredMessage string
	EmptyMessage    string
}

// CrossRule is evaluated after every field, on the submitted or defaulted
// values. It returns a message when violated.
type CrossRule func(values Payload) (string, bool)

// Schema is an ordered set of fields plus cross-field rules
type Schema struct {
	name   string
	fields []Field
	cross  []CrossRule
}

func NewSchema(name string, fields ...Field) Schema {
	return Schema{name: name, fields: fields}
}

// WithCrossRules returns a copy of the schema with extra cross-field rules
func (s Schema) WithCrossRules(rules ...CrossRule) Schema {
	out := s.clone()
	out.cross = append(out.cross, rules...)
	return out
}

func (s Schema) Name() string {
	return s.name
}

// Partial derives the update variant: same rules, every field optional,
// no default substitution.
func (s Schema) Partial() Schema {
	out := s.clone()
	out.name = s.name + ".update"
	for i := range out.fields {
		out.fields[i].Required = false
		out.fields[i].Default = nil
	}
	return out
}

func (s Schema) clone() Schema {
	out := Schema{name: s.name}
	out.fields = append([]Field(nil), s.fields...)
	out.cross = append([]CrossRule(nil), s.cross...)
	return out
}

// Validate checks raw against the schema. Unknown keys are dropped. The
// returned payload holds converted values (trimmed strings, lower-cased
// emails, int64, bool, time.Time, uuid.UUID, or nil for explicit nulls).
func (s Schema) Validate(raw map[string]interface{}) (Payload, error) {
	values := make(Payload, len(s.fields))
	var violations []string

	for _, f := range s.fields {
		rawValue, present := raw[f.Name]

		if !present {
			if f.Default != nil {
				values[f.Name] = f.Default()
				continue
			}
			if f.Required {
				violations = append(violations, f.requiredMessage())
			}
			continue
		}

		if rawValue == nil {
			if f.Nullable {
				values[f.Name] = nil
			} else {
				violations = append(violations, f.typeMessage())
			}
			continue
		}

		value, msg, ok := convert(f, rawValue)
		if !ok {
			violations = append(violations, msg)
			continue
		}

		fieldViolations := runChecks(f, value)
		if len(fieldViolations) > 0 {
			violations = append(violations, fieldViolations...)
			continue
		}

		values[f.Name] = value
	}

	for _, rule := range s.cross {
		if msg, violated := rule(values); violated {
			violations = append(violations, msg)
		}
	}

	if len(violations) > 0 {
		return nil, apperror.BadRequest(violations...)
	}
	return values, nil
}

func runChecks(f Field, value interface{}) []string {
	var out []string
	for _, check := range f.Checks {
		if err := ozzo.Validate(value, check.Rule); err != nil {
			if check.Message != "" {
				out = append(out, check.Message)
			} else {
				out = append(out, f.Name+": "+err.Error())
			}
		}
	}
	return out
}

func (f Field) requiredMessage() string {
	if f.RequiredMessage != "" {
		return f.RequiredMessage
	}
	return f.Name + " est requis"
}

func (f Field) typeMessage() string {
	if f.TypeMessage != "" {
		return f.TypeMessage
	}
	return f.Name + " est invalide"
}

func (f Field) emptyMessage() string {
	if f.EmptyMessage != "" {
		return f.EmptyMessage
	}
	return f.Name + " ne peut pas être vide"
}

// NotBefore requires values[field] >= values[ref] when both are dates
func NotBefore(field, ref, message string) CrossRule {
	return func(values Payload) (string, bool) {
		v, ok := values[field].(time.Time)
		if !ok {
			return "", false
		}
		r, ok := values[ref].(time.Time)
		if !ok {
			return "", false
		}
		if v.Before(r) {
			return message, true
		}
		return "", false
	}
}

// Now is the default for timestamp fields
func Now() interface{} {
	return time.Now().UTC()
}
