package models

import "time"

// RefreshToken is the durable session record. One row per live session;
// written only by the auth service.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
