package entity

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseNoDelete
	Name     string     `db:"name"`
	ParentID *uuid.UUID `db:"parent_id"`
}
