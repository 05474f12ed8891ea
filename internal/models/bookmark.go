package models

import "time"

// Bookmark links a user to a resource they saved.
type Bookmark struct {
	ID         string    `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"userId"`
	ResourceID string    `db:"resource_id" json:"resourceId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	Resource   *Resource `db:"-" json:"resource"`
}

// BookmarkRequest is the body of bookmark create and delete calls.
type BookmarkRequest struct {
	UserID     string `json:"userId" validate:"required"`
	ResourceID string `json:"resourceId" validate:"required"`
}

// BookmarkList is the payload of the per-user bookmark listing.
type BookmarkList struct {
	Success bool       `json:"success"`
	Data    []Bookmark `json:"data"`
	Count   int        `json:"count"`
}

// Ack is the generic success/failure payload of mutating calls.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
