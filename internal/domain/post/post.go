// Package post describes posts owned by users. Posts are written by another
// system and are only read here.
package post

import "github.com/lllypuk/userhub/internal/domain/objectid"

// Post is a single post referencing its owning user
type Post struct {
	ID     objectid.ID
	Title  string
	UserID objectid.ID
}

// TitleCount is one row of the per-post join report
type TitleCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// UserCount is one row of the per-user post ranking
type UserCount struct {
	UserID   objectid.ID `json:"user_id"`
	Username string      `json:"username"`
	Count    int         `json:"count"`
}
