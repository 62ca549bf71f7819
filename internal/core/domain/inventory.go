package domain

import (
	"errors"
	"time"
)

var ErrVehicleNotFound = errors.New("vehicle not found")
var ErrClassificationNotFound = errors.New("classification not found")
var ErrClassificationExists = errors.New("classification already exists")

// Classification is a vehicle category shown in the site navigation.
type Classification struct {
	ID   string `json:"classification_id"`
	Name string `json:"classification_name"`
}

// Vehicle is an inventory record.
type Vehicle struct {
	ID               string    `json:"inv_id"`
	Make             string    `json:"inv_make"`
	Model            string    `json:"inv_model"`
	Year             int       `json:"inv_year"`
	Description      string    `json:"inv_description"`
	Image            string    `json:"inv_image"`
	Thumbnail        string    `json:"inv_thumbnail"`
	Price            float64   `json:"inv_price"`
	Miles            int       `json:"inv_miles"`
	Color            string    `json:"inv_color"`
	ClassificationID string    `json:"classification_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SearchFilter holds the optional criteria of an inventory search. Zero
// values mean "no constraint".
type SearchFilter struct {
	Make     string
	Model    string
	YearMin  int
	YearMax  int
	PriceMin float64
	PriceMax float64
}

// Empty reports whether no criterion is set.
func (f SearchFilter) Empty() bool {
	return f.Make == "" && f.Model == "" &&
		f.YearMin == 0 && f.YearMax == 0 &&
		f.PriceMin == 0 && f.PriceMax == 0
}

// ClassificationCount is one row of the per-classification report breakdown.
type ClassificationCount struct {
	Name  string `json:"classification_name"`
	Count int64  `json:"count"`
}

// ReportSummary aggregates site-wide figures for the reports dashboard.
type ReportSummary struct {
	TotalAccounts   int64                 `json:"total_accounts"`
	TotalVehicles   int64                 `json:"total_vehicles"`
	AveragePrice    float64               `json:"average_price"`
	Classifications []ClassificationCount `json:"classifications"`
}
