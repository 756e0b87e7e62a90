package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodCategory is the coarse category of a dish.
type FoodCategory string

const (
	CategorySavory FoodCategory = "Savory"
	CategorySweet  FoodCategory = "Sweet"
)

// CuisineType is the fixed cuisine set a post can be tagged with.
type CuisineType string

const (
	CuisineMalay    CuisineType = "Malay"
	CuisineChinese  CuisineType = "Chinese"
	CuisineIndian   CuisineType = "Indian"
	CuisineMamak    CuisineType = "Mamak"
	CuisineJapanese CuisineType = "Japanese"
	CuisineKorean   CuisineType = "Korean"
	CuisineThai     CuisineType = "Thai"
	CuisineWestern  CuisineType = "Western"
	CuisineFusion   CuisineType = "Fusion"
	CuisineOther    CuisineType = "Other"
)

// GeoPoint is a GeoJSON point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(latitude, longitude float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

// Latitude returns the latitude component, or 0 for a malformed point.
func (p *GeoPoint) Latitude() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Longitude returns the longitude component, or 0 for a malformed point.
func (p *GeoPoint) Longitude() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}
	return p.Coordinates[0]
}

// AspectRatings holds the optional per-aspect breakdown of a food rating.
type AspectRatings struct {
	Taste        int `json:"taste,omitempty" bson:"taste,omitempty" validate:"omitempty,min=1,max=5"`
	Presentation int `json:"presentation,omitempty" bson:"presentation,omitempty" validate:"omitempty,min=1,max=5"`
	Value        int `json:"value,omitempty" bson:"value,omitempty" validate:"omitempty,min=1,max=5"`
}

// Post represents a food post stored in MongoDB. The three counters are
// denormalized from the Postgres relation tables and are only ever mutated
// through the atomic $inc updates in the post repository.
type Post struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID           uint               `json:"author_id" bson:"author_id"`
	Title              string             `json:"title" bson:"title"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL           string             `json:"image_url" bson:"image_url"`
	FoodCategory       FoodCategory       `json:"food_category" bson:"food_category"`
	CuisineType        CuisineType        `json:"cuisine_type" bson:"cuisine_type"`
	DietaryTags        []string           `json:"dietary_tags,omitempty" bson:"dietary_tags,omitempty"`
	FoodRating         int                `json:"food_rating" bson:"food_rating"`
	AspectRatings      *AspectRatings     `json:"aspect_ratings,omitempty" bson:"aspect_ratings,omitempty"`
	RestaurantName     string             `json:"restaurant_name,omitempty" bson:"restaurant_name,omitempty"`
	RestaurantLocation *GeoPoint          `json:"restaurant_location,omitempty" bson:"restaurant_location,omitempty"`
	MenuItemName       string             `json:"menu_item_name,omitempty" bson:"menu_item_name,omitempty"`
	MenuItemPrice      float64            `json:"menu_item_price,omitempty" bson:"menu_item_price,omitempty"`
	LikesCount         int                `json:"likes_count" bson:"likes_count"`
	SavesCount         int                `json:"saves_count" bson:"saves_count"`
	CommentsCount      int                `json:"comments_count" bson:"comments_count"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for publishing a new post
type CreatePostRequest struct {
	Title          string         `json:"title" validate:"required,min=1,max=120"`
	Description    string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL       string         `json:"image_url" validate:"required,url"`
	FoodCategory   string         `json:"food_category" validate:"required,oneof=Savory Sweet"`
	CuisineType    string         `json:"cuisine_type" validate:"required,oneof=Malay Chinese Indian Mamak Japanese Korean Thai Western Fusion Other"`
	DietaryTags    []string       `json:"dietary_tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
	FoodRating     int            `json:"food_rating" validate:"required,min=1,max=5"`
	AspectRatings  *AspectRatings `json:"aspect_ratings,omitempty"`
	RestaurantName string         `json:"restaurant_name,omitempty" validate:"omitempty,max=120"`
	Latitude       *float64       `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64       `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	MenuItemName   string         `json:"menu_item_name,omitempty" validate:"omitempty,max=120"`
	MenuItemPrice  float64        `json:"menu_item_price,omitempty" validate:"omitempty,min=0"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title          string         `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description    string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL       string         `json:"image_url,omitempty" validate:"omitempty,url"`
	FoodCategory   string         `json:"food_category,omitempty" validate:"omitempty,oneof=Savory Sweet"`
	CuisineType    string         `json:"cuisine_type,omitempty" validate:"omitempty,oneof=Malay Chinese Indian Mamak Japanese Korean Thai Western Fusion Other"`
	DietaryTags    []string       `json:"dietary_tags,omitempty" validate:"omitempty,dive,min=1,max=30"`
	FoodRating     int            `json:"food_rating,omitempty" validate:"omitempty,min=1,max=5"`
	AspectRatings  *AspectRatings `json:"aspect_ratings,omitempty"`
	RestaurantName string         `json:"restaurant_name,omitempty" validate:"omitempty,max=120"`
	Latitude       *float64       `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude      *float64       `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	MenuItemName   string         `json:"menu_item_name,omitempty" validate:"omitempty,max=120"`
	MenuItemPrice  float64        `json:"menu_item_price,omitempty" validate:"omitempty,min=0"`
}
