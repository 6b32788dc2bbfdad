package models

import (
	"time"
)

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
}

type Post struct {
	ID       int64     `db:"id"`
	Title    string    `db:"title"`
	Body     string    `db:"body"`
	Created  time.Time `db:"created"`
	AuthorID int64     `db:"author_id"`
}

// PostWithAuthor is a post row joined with its author's username.
type PostWithAuthor struct {
	Post
	Username string `db:"username"`
}
