// Package content holds read models for tables owned by the blog, newsletter
// and campaign tools. Nothing in this module writes to them outside tests.
package content

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type SubscriberStatus string

const (
	SubscriberStatusActive       SubscriberStatus = "active"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// User is a post author.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (User) TableName() string { return "user" }

type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"column:title;not null" json:"title"`
	Slug      string     `gorm:"column:slug;index" json:"slug"`
	Status    PostStatus `gorm:"column:status;not null;default:'draft';index" json:"status"`
	AuthorID  *uint      `gorm:"column:author_id;index" json:"authorId"`
	Author    *User      `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	CreatedAt time.Time  `gorm:"not null;index" json:"createdAt"`
}

func (Post) TableName() string { return "post" }

type Subscriber struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Email     string           `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Name      string           `gorm:"column:name" json:"name,omitempty"`
	Status    SubscriberStatus `gorm:"column:status;not null;default:'active';index" json:"status"`
	CreatedAt time.Time        `gorm:"not null;index" json:"createdAt"`
}

func (Subscriber) TableName() string { return "subscriber" }

type Campaign struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Status    string    `gorm:"column:status;not null;default:'draft'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Campaign) TableName() string { return "campaign" }
