package models

import "time"

type Post struct {
	ID        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string    `json:"title" gorm:"type:varchar(255);not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Image     *string   `json:"image,omitempty" gorm:"type:varchar(512)"`
	UserID    int       `json:"user_id" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Post) TableName() string {
	return "posts"
}

// PostWithAuthor is the read shape for every public listing: a post row
// joined with its author's username.
type PostWithAuthor struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Image   *string `json:"image,omitempty"`
	UserID  int     `json:"user_id"`
	Author  string  `json:"author"`
}
