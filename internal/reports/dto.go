package reports

import (
	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ReportDTO is the transport shape for a car sale report.
type ReportDTO struct {
	ID       uint    `json:"id"`
	Price    float64 `json:"price"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Year     int     `json:"year"`
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
	Mileage  int64   `json:"mileage"`
	Approved bool    `json:"approved"`
	UserID   uint    `json:"user_id"`
}

func FromModel(r *models.Report) *ReportDTO {
	if r == nil {
		return nil
	}

	return &ReportDTO{
		ID:       r.ID,
		Price:    r.Price.InexactFloat64(),
		Make:     r.Make,
		Model:    r.Model,
		Year:     r.Year,
		Lng:      r.Lng,
		Lat:      r.Lat,
		Mileage:  r.Mileage,
		Approved: r.Approved,
		UserID:   r.UserID,
	}
}

// CreateReportInput is the body accepted by the report creation endpoint.
// Numeric fields are pointers so that zero values still satisfy required.
type CreateReportInput struct {
	Price   *float64 `json:"price" validate:"required,min=0,max=1000000"`
	Make    string   `json:"make" validate:"required"`
	Model   string   `json:"model" validate:"required"`
	Year    *int     `json:"year" validate:"required,min=1930,max=2050"`
	Lng     *float64 `json:"lng" validate:"required,longitude"`
	Lat     *float64 `json:"lat" validate:"required,latitude"`
	Mileage *int64   `json:"mileage" validate:"required,min=0,max=1000000"`
}

func (c CreateReportInput) toModel(ownerID uint) *models.Report {
	return &models.Report{
		Price:   decimal.NewFromFloat(*c.Price),
		Make:    c.Make,
		Model:   c.Model,
		Year:    *c.Year,
		Lng:     *c.Lng,
		Lat:     *c.Lat,
		Mileage: *c.Mileage,
		UserID:  ownerID,
	}
}

// ApproveReportInput is the body accepted by the approval endpoint.
type ApproveReportInput struct {
	Approved *bool `json:"approved" validate:"required"`
}

// EstimateQuery describes the car whose value is being estimated.
type EstimateQuery struct {
	Make    string   `validate:"required"`
	Model   string   `validate:"required"`
	Year    *int     `validate:"required,min=1930,max=2050"`
	Lng     *float64 `validate:"required,longitude"`
	Lat     *float64 `validate:"required,latitude"`
	Mileage *int64   `validate:"required,min=0,max=1000000"`
}

// EstimateDTO carries the averaged price, null when no comparable sales exist.
type EstimateDTO struct {
	Price *float64 `json:"price"`
}
