package constants

import (
	"database/sql/driver"
	"fmt"
)

// LifecycleState is the tombstone state of soft-deletable rows (aircraft, flights).
type LifecycleState string

const (
	StateActive  LifecycleState = "active"
	StateDeleted LifecycleState = "deleted"
)

func (s LifecycleState) String() string { return string(s) }

func (s LifecycleState) IsActive() bool { return s == StateActive }

// Scan implements the sql.Scanner interface
func (s *LifecycleState) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = LifecycleState(v)
	case []byte:
		*s = LifecycleState(v)
	default:
		return fmt.Errorf("LifecycleState: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (s LifecycleState) Value() (driver.Value, error) { return string(s), nil }
