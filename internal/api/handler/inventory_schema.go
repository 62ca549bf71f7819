package handler

import "github.com/cse-motors/dealership/internal/core/domain"

type classificationForm struct {
	Name string `form:"classification_name" validate:"required,alphanum"`
}

type vehicleForm struct {
	ID               string  `form:"inv_id"`
	Make             string  `form:"inv_make" validate:"required"`
	Model            string  `form:"inv_model" validate:"required"`
	Year             int     `form:"inv_year" validate:"required,gte=1900,lte=2100"`
	Description      string  `form:"inv_description" validate:"required"`
	Image            string  `form:"inv_image" validate:"required"`
	Thumbnail        string  `form:"inv_thumbnail" validate:"required"`
	Price            float64 `form:"inv_price" validate:"required,gte=0"`
	Miles            int     `form:"inv_miles" validate:"gte=0"`
	Color            string  `form:"inv_color" validate:"required"`
	ClassificationID string  `form:"classification_id" validate:"required"`
}

func (f *vehicleForm) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               f.ID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             f.Year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            f.Price,
		Miles:            f.Miles,
		Color:            f.Color,
		ClassificationID: f.ClassificationID,
	}
}

func vehicleFormFrom(v *domain.Vehicle) vehicleForm {
	return vehicleForm{
		ID:               v.ID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            v.Price,
		Miles:            v.Miles,
		Color:            v.Color,
		ClassificationID: v.ClassificationID,
	}
}

// vehicleFormPage is the Content payload of the shared vehicle form template.
type vehicleFormPage struct {
	vehicleForm
	Classifications []domain.Classification
	Action          string
	Submit          string
}

type searchForm struct {
	Make     string  `form:"make"`
	Model    string  `form:"model"`
	YearMin  int     `form:"year_min"`
	YearMax  int     `form:"year_max"`
	PriceMin float64 `form:"price_min"`
	PriceMax float64 `form:"price_max"`
}

func (f *searchForm) filter() domain.SearchFilter {
	return domain.SearchFilter{
		Make:     f.Make,
		Model:    f.Model,
		YearMin:  f.YearMin,
		YearMax:  f.YearMax,
		PriceMin: f.PriceMin,
		PriceMax: f.PriceMax,
	}
}
