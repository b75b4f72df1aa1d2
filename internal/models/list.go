package models

import "time"

type List struct {
	ID          int64
	Title       string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
