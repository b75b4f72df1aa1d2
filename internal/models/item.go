package models

import (
	"fmt"
	"time"
)

// ItemStatus is the closed set of states a todo item can be in.
// The zero value is not a valid status.
type ItemStatus uint8

const (
	StatusNotCompleted ItemStatus = iota + 1
	StatusCompleted
)

const (
	statusNotCompletedCode = "NOT_COMPLETED"
	statusCompletedCode    = "COMPLETED"
)

// StatusFromComplete maps the "complete" flag of an update request to a status.
func StatusFromComplete(complete bool) ItemStatus {
	if complete {
		return StatusCompleted
	}
	return StatusNotCompleted
}

// ParseItemStatus parses the code stored in the status_code column.
func ParseItemStatus(code string) (ItemStatus, error) {
	switch code {
	case statusNotCompletedCode:
		return StatusNotCompleted, nil
	case statusCompletedCode:
		return StatusCompleted, nil
	default:
		return 0, fmt.Errorf("unknown item status: %q", code)
	}
}

func (s ItemStatus) String() string {
	switch s {
	case StatusNotCompleted:
		return statusNotCompletedCode
	case StatusCompleted:
		return statusCompletedCode
	default:
		return fmt.Sprintf("ItemStatus(%d)", uint8(s))
	}
}

func (s ItemStatus) Valid() bool {
	return s == StatusNotCompleted || s == StatusCompleted
}

func (s ItemStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid item status: %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *ItemStatus) UnmarshalText(text []byte) error {
	status, err := ParseItemStatus(string(text))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Item struct {
	ID          int64
	ListID      int64
	Title       string
	Description *string
	Status      ItemStatus
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
