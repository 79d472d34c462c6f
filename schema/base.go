package schema

// Base is a zero-value schema meant to be embedded in concrete payload
// structs. Embedding types usually shadow String with a JSON dump.
type Base struct{}

// String implements the Schema interface
func (b Base) String() string {
	return ""
}
