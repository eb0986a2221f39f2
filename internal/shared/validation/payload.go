package validation

import (
	"time"

	"github.com/google/uuid"
)

// Payload is a validated request body. Only keys declared by the schema
// are present, with values already converted to their Go types.
type Payload map[string]interface{}

// Has reports whether key was submitted or defaulted
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// IsNull reports an explicit JSON null on a nullable field
func (p Payload) IsNull(key string) bool {
	v, ok := p[key]
	return ok && v == nil
}

func (p Payload) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

func (p Payload) Int(key string) (int64, bool) {
	v, ok := p[key].(int64)
	return v, ok
}

func (p Payload) Bool(key string) (bool, bool) {
	v, ok := p[key].(bool)
	return v, ok
}

func (p Payload) Time(key string) (time.Time, bool) {
	v, ok := p[key].(time.Time)
	return v, ok
}

func (p Payload) ID(key string) (uuid.UUID, bool) {
	v, ok := p[key].(uuid.UUID)
	return v, ok
}

// StringPtr returns nil when key is absent
func (p Payload) StringPtr(key string) *string {
	if v, ok := p.String(key); ok {
		return &v
	}
	return nil
}

func (p Payload) IntPtr(key string) *int64 {
	if v, ok := p.Int(key); ok {
		return &v
	}
	return nil
}

func (p Payload) BoolPtr(key string) *bool {
	if v, ok := p.Bool(key); ok {
		return &v
	}
	return nil
}

func (p Payload) TimePtr(key string) *time.Time {
	if v, ok := p.Time(key); ok {
		return &v
	}
	return nil
}

func (p Payload) IDPtr(key string) *uuid.UUID {
	if v, ok := p.ID(key); ok {
		return &v
	}
	return nil
}
