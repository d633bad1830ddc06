package entity

import "time"

// Category agrupa productos. El nombre es único.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
