package models

import "time"

// Game is a catalog section for game-related products. Sections are
// soft-deactivated, never deleted.
type Game struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IconURL   string    `json:"icon_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// App is a catalog section for Telegram service products.
type App struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IconURL   string    `json:"icon_url"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Product is a purchasable catalog item. DeliveryData holds the secret
// payload (credentials, codes, instructions) released to the buyer only
// after payment is confirmed; it is never serialized into API responses.
type Product struct {
	ID           int64     `json:"id"`
	GameID       *int64    `json:"game_id,omitempty"`
	AppID        *int64    `json:"app_id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Price        float64   `json:"price"`
	DeliveryData string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type GameCreate struct {
	Name    string `json:"name" binding:"required"`
	IconURL string `json:"icon_url"`
}

type AppCreate struct {
	Name    string `json:"name" binding:"required"`
	IconURL string `json:"icon_url"`
}

type ProductCreate struct {
	GameID       *int64  `json:"game_id"`
	AppID        *int64  `json:"app_id"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
	Price        float64 `json:"price" binding:"min=0"`
	DeliveryData string  `json:"delivery_data"`
}
