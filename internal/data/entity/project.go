package entity

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	Base
	ClientID  uuid.UUID  `db:"client_id"`
	Name      string     `db:"name"`
	StartDate *time.Time `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
}
