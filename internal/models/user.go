package models

import "time"

// User is the tenant that owns boards
type User struct {
	ID        int
	Username  string
	CreatedAt time.Time
}
