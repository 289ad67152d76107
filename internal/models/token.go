package models

import "time"

// Token is an opaque session credential. Each user has at most one live
// token; it is created lazily on first successful authentication and
// deleted on logout.
type Token struct {
	Key       string    `json:"token"`
	UserID    string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
