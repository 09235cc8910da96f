package models

import "time"

// Favorite is a raw user_favorites record
type Favorite struct {
	FavoriteID int       `json:"favoriteId" db:"favorite_id"`
	UserID     string    `json:"userId" db:"user_id"`
	ProductID  string    `json:"productId" db:"product_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// FavoriteProduct is a favorite joined with its product
type FavoriteProduct struct {
	FavoriteID int       `json:"favoriteId"`
	Product    Product   `json:"product"`
	CreatedAt  time.Time `json:"createdAt"`
}
