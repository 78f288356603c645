package reports

import (
	"context"

	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository exposes report persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reports repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new report and returns the persisted model.
func (r *Repository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return nil, err
	}
	return report, nil
}

// FindByID loads a report by its numeric id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// UpdateApproval flips the approval flag on an existing report.
func (r *Repository) UpdateApproval(ctx context.Context, id uint, approved bool) (*models.Report, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		UpdateColumn("approved", approved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Estimate averages the prices of the three approved sales closest in
// mileage, among reports for the same make and model sold within five
// degrees of longitude and latitude and three years of the target. The
// result is null when no report matches.
func (r *Repository) Estimate(ctx context.Context, query EstimateQuery) (*float64, error) {
	const stmt = `
SELECT AVG(price) FROM (
  SELECT price FROM reports
  WHERE make = ?
    AND model = ?
    AND lng BETWEEN ? - 5 AND ? + 5
    AND lat BETWEEN ? - 5 AND ? + 5
    AND year BETWEEN ? - 3 AND ? + 3
    AND approved = ?
  ORDER BY ABS(mileage - ?) ASC
  LIMIT 3
) AS closest`

	var avg decimal.NullDecimal
	err := r.db.WithContext(ctx).Raw(stmt,
		query.Make,
		query.Model,
		*query.Lng, *query.Lng,
		*query.Lat, *query.Lat,
		*query.Year, *query.Year,
		true,
		*query.Mileage,
	).Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	price := avg.Decimal.InexactFloat64()
	return &price, nil
}
