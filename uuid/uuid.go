package uuid

import (
	"log"

	_uuid "github.com/gofrs/uuid/v5"
)

var Nil = _uuid.Nil

func NewV4() _uuid.UUID {
	id, err := _uuid.NewV4()
	if err != nil {
		log.Panicln(err)
	}
	return id
}

func NewV4String() string {
	return NewV4().String()
}

// Valid reports whether id is a canonical non-nil UUID string.
func Valid(id string) bool {
	u, err := _uuid.FromString(id)
	return err == nil && u != _uuid.Nil
}
