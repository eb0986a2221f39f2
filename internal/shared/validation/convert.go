package validation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Accepted date layouts, most specific first
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// convert coerces a decoded JSON value to the field's Go type. Numbers
// arrive as json.Number (the body decoder uses UseNumber); numeric and
// boolean strings are accepted the same way a lenient JSON schema would.
func convert(f Field, raw interface{}) (interface{}, string, bool) {
	switch f.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, f.typeMessage(), false
		}
		if !f.NoTrim {
			s = strings.TrimSpace(s)
		}
		if s == "" {
			return nil, f.emptyMessage(), false
		}
		return s, "", true

	case TypeEmail:
		s, ok := raw.(string)
		if !ok {
			return nil, f.typeMessage(), false
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return nil, f.emptyMessage(), false
		}
		return s, "", true

	case TypeInteger:
		n, ok := toInt(raw)
		if !ok {
			return nil, f.typeMessage(), false
		}
		return n, "", true

	case TypeBoolean:
		switch v := raw.(type) {
		case bool:
			return v, "", true
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return true, "", true
			case "false":
				return false, "", true
			}
		}
		return nil, f.typeMessage(), false

	case TypeDate:
		t, ok := toTime(raw)
		if !ok {
			return nil, f.typeMessage(), false
		}
		return t, "", true

	case TypeID:
		s, ok := raw.(string)
		if !ok {
			return nil, f.typeMessage(), false
		}
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, f.typeMessage(), false
		}
		return id, "", true
	}

	return nil, f.typeMessage(), false
}

func toInt(raw interface{}) (int64, bool) {
	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, false
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	// "12.0" is still an integer
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func toTime(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	case json.Number:
		// epoch milliseconds
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case time.Time:
		return v.UTC(), true
	}
	return time.Time{}, false
}
