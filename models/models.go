package models

import "time"

type Topic struct {
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

type User struct {
	Username  string `db:"username" json:"username"`
	Name      string `db:"name" json:"name"`
	AvatarURL string `db:"avatar_url" json:"avatar_url"`
}

// Article is an articles row plus the number of comments counted at read time.
// Listings leave Body empty.
type Article struct {
	ID            int64     `db:"article_id" json:"article_id"`
	Title         string    `db:"title" json:"title"`
	Topic         string    `db:"topic" json:"topic"`
	Author        string    `db:"author" json:"author"`
	Body          string    `db:"body" json:"body,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Votes         int       `db:"votes" json:"votes"`
	ArticleImgURL string    `db:"article_img_url" json:"article_img_url"`
	CommentCount  int       `db:"comment_count" json:"comment_count"`
}

type Comment struct {
	ID        int64     `db:"comment_id" json:"comment_id"`
	Body      string    `db:"body" json:"body"`
	ArticleID int64     `db:"article_id" json:"article_id"`
	Author    string    `db:"author" json:"author"`
	Votes     int       `db:"votes" json:"votes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
