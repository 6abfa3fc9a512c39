package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that distinguishes an omitted key from an explicit
// null. Set is true when the key appeared in the payload; Value is nil when
// the payload carried null. Partial updates use it to clear nullable columns.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true

	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}

	return json.Unmarshal(data, &o.Value)
}
