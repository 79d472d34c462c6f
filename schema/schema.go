package schema

import "encoding/json"

// Schema is the common interface for all agent and tool message payloads.
type Schema interface {
	// String returns a human readable representation of the payload.
	String() string
}

// Stringify serializes a schema for inclusion in a chat message. Plain
// strings pass through unchanged, everything else is JSON encoded.
func Stringify(s Schema) string {
	if v, ok := s.(String); ok {
		return string(v)
	}
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ToBytes serializes a schema to raw bytes.
func ToBytes(s Schema) []byte {
	if v, ok := s.(String); ok {
		return []byte(v)
	}
	bs, _ := json.Marshal(s)
	return bs
}
