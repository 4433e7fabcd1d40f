package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	JoinDate     time.Time `gorm:"not null"                 json:"join_date"`
}

type Platform struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"unique;not null"          json:"name"`
	LogoURL string `json:"logo_url"`
}

type Publisher struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Developer struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Game struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null"                 json:"title"`
	Description string `gorm:"not null"                 json:"description"`
	ReleaseYear int    `gorm:"not null"                 json:"release_year"`
	GenreID     uint   `gorm:"index;not null"           json:"genre_id"`
	PlatformID  uint   `gorm:"index;not null"           json:"platform_id"`
	PublisherID uint   `gorm:"index;not null"           json:"publisher_id"`
	DeveloperID uint   `gorm:"index;not null"           json:"developer_id"`
	ImageURL    string `json:"image_url"`
}

type Favourite struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_fav_user_game;not null"  json:"user_id"`
	GameID    uint      `gorm:"uniqueIndex:idx_fav_user_game;not null"  json:"game_id"`
	CreatedAt time.Time `gorm:"not null"                                json:"created_at"`
}

type Rating struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                   json:"id"`
	GameID    uint      `gorm:"uniqueIndex:idx_rating_user_game;not null"  json:"game_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_rating_user_game;not null"  json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `gorm:"not null"                                   json:"created_at"`
}
