package provenance

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Field is one provenance key/value pair.
type Field struct {
	Key   string
	Value string
}

// Map is an ordered set of provenance fields. Ordering matters on the wire:
// consumers diff serialized records and compare them against golden files,
// so Map marshals to a JSON object whose keys appear in slice order rather
// than the unordered object a Go map would produce.
type Map []Field

// Get returns the value for key, or the empty string if absent.
func (m Map) Get(key string) string {
	for _, f := range m {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Has reports whether key is present.
func (m Map) Has(key string) bool {
	for _, f := range m {
		if f.Key == key {
			return true
		}
	}
	return false
}

// AsMap flattens to a plain string map, e.g. for FromMap round trips.
func (m Map) AsMap() map[string]string {
	out := make(map[string]string, len(m))
	for _, f := range m {
		out[f.Key] = f.Value
	}
	return out
}

// set appends key only when value is non-empty.
func (m Map) set(key, value string) Map {
	if value == "" {
		return m
	}
	return append(m, Field{Key: key, Value: value})
}

// MarshalJSON emits a JSON object preserving slice order. A nil or empty
// Map marshals to {}.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, eris.Wrap(err, "provenance: marshal field key")
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, eris.Wrap(err, "provenance: marshal field value")
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ParseRecord reconstructs a Record from a JSON object, e.g. the inner
// block of a registry extension. Unknown keys are ignored, as are
// non-string values of unknown keys, so payloads from future schema
// versions parse cleanly. A model_id key holding a non-string value is
// treated as missing. Malformed JSON yields a wrapped decode error,
// distinct from ErrMissingModelID.
func ParseRecord(data []byte) (Record, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, eris.Wrap(err, "provenance: parse record")
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return FromMap(fields)
}
