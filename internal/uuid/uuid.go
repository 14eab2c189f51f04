package uuid

import (
	"github.com/forecast-ledger/backend/internal/httputil"
	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that it can be bound from URI and query
// parameters by gin.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements gin's binding.BindUnmarshaler. An empty
// parameter binds to the Nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return httputil.ErrInvalidUUID
	}

	*u = UUID{parsed}
	return nil
}
