package domain

import "errors"

var (
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrClassificationNotFound = errors.New("classification not found")
)

// Classification groups vehicles for the navigation bar and grid pages.
type Classification struct {
	ID   string `json:"id" bson:"_id,omitempty"`
	Name string `json:"name" bson:"name"`
}

// Vehicle is a single inventory record rendered on grid and detail pages.
type Vehicle struct {
	ID               string  `json:"id" bson:"_id,omitempty"`
	Make             string  `json:"make" bson:"make"`
	Model            string  `json:"model" bson:"model"`
	Year             int     `json:"year" bson:"year"`
	Description      string  `json:"description" bson:"description"`
	Image            string  `json:"image" bson:"image"`
	Thumbnail        string  `json:"thumbnail" bson:"thumbnail"`
	Price            float64 `json:"price" bson:"price"`
	Miles            int     `json:"miles" bson:"miles"`
	Color            string  `json:"color" bson:"color"`
	ClassificationID string  `json:"classification_id" bson:"classification_id"`
}
