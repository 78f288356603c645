package reports

import (
	"context"
	"testing"

	"github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupReportsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  admin INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	reports := `
CREATE TABLE IF NOT EXISTS reports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  price NUMERIC NOT NULL,
  make TEXT NOT NULL,
  model TEXT NOT NULL,
  year INTEGER NOT NULL,
  lng REAL NOT NULL,
  lat REAL NOT NULL,
  mileage INTEGER NOT NULL,
  approved INTEGER NOT NULL DEFAULT 0,
  user_id INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	require.NoError(t, db.Exec(reports).Error)
	require.NoError(t, db.Exec(`DELETE FROM reports`).Error)
	require.NoError(t, db.Exec(`DELETE FROM users`).Error)
	return db
}

func seedOwner(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	owner := &models.User{Email: "seller@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	return owner
}

func seedReport(t *testing.T, repo *Repository, ownerID uint, price float64, mileage int64, approved bool) *models.Report {
	t.Helper()
	report, err := repo.Create(context.Background(), &models.Report{
		Price:   decimal.NewFromFloat(price),
		Make:    "honda",
		Model:   "civic",
		Year:    2018,
		Lng:     -122.33,
		Lat:     47.6,
		Mileage: mileage,
		UserID:  ownerID,
	})
	require.NoError(t, err)
	if approved {
		report, err = repo.UpdateApproval(context.Background(), report.ID, true)
		require.NoError(t, err)
	}
	return report
}

func civicQuery(mileage int64) EstimateQuery {
	year := 2018
	lng := -122.33
	lat := 47.6
	return EstimateQuery{
		Make:    "honda",
		Model:   "civic",
		Year:    &year,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	created := seedReport(t, repo, owner.ID, 10000, 30000, false)
	assert.False(t, created.Approved)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "civic", found.Model)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, owner.ID, found.UserID)
}

func TestRepositoryUpdateApprovalPersists(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	created := seedReport(t, repo, owner.ID, 10000, 30000, false)

	updated, err := repo.UpdateApproval(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Approved)

	reloaded, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Approved)

	_, err = repo.UpdateApproval(context.Background(), created.ID+100, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateApprovalSameValue(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	created := seedReport(t, repo, owner.ID, 10000, 30000, true)

	// Re-applying the stored value is not a missing-row condition.
	again, err := repo.UpdateApproval(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, again.Approved)
	assert.Equal(t, created.ID, again.ID)

	reverted, err := repo.UpdateApproval(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, reverted.Approved)

	_, err = repo.UpdateApproval(context.Background(), created.ID, false)
	require.NoError(t, err)
}

func TestRepositoryEstimateSingleMatch(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	seedReport(t, repo, owner.ID, 10000, 10000, true)

	price, err := repo.Estimate(context.Background(), civicQuery(10000))
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.InDelta(t, 10000, *price, 0.001)
}

func TestRepositoryEstimateNullWithoutMatches(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)

	price, err := repo.Estimate(context.Background(), civicQuery(10000))
	require.NoError(t, err)
	assert.Nil(t, price)
}

func TestRepositoryEstimateAveragesThreeClosestByMileage(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	seedReport(t, repo, owner.ID, 9000, 29000, true)
	seedReport(t, repo, owner.ID, 10000, 31000, true)
	seedReport(t, repo, owner.ID, 11000, 33000, true)
	// Far off in mileage, must be cut by the three-row window.
	seedReport(t, repo, owner.ID, 50000, 200000, true)

	price, err := repo.Estimate(context.Background(), civicQuery(30000))
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.InDelta(t, 10000, *price, 0.001)
}

func TestRepositoryEstimateIgnoresUnapproved(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	seedReport(t, repo, owner.ID, 10000, 30000, true)
	seedReport(t, repo, owner.ID, 99999, 30000, false)

	price, err := repo.Estimate(context.Background(), civicQuery(30000))
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.InDelta(t, 10000, *price, 0.001)
}

func TestRepositoryEstimateFiltersByAttributes(t *testing.T) {
	db := setupReportsTestDB(t)
	repo := NewRepository(db)
	owner := seedOwner(t, db)

	seedReport(t, repo, owner.ID, 10000, 30000, true)

	// Wrong model.
	year := 2018
	lng := -122.33
	lat := 47.6
	mileage := int64(30000)
	price, err := repo.Estimate(context.Background(), EstimateQuery{
		Make:    "honda",
		Model:   "accord",
		Year:    &year,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	})
	require.NoError(t, err)
	assert.Nil(t, price)

	// Year outside the three-year window.
	farYear := 2025
	price, err = repo.Estimate(context.Background(), EstimateQuery{
		Make:    "honda",
		Model:   "civic",
		Year:    &farYear,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	})
	require.NoError(t, err)
	assert.Nil(t, price)

	// Location outside the five-degree box.
	farLng := -80.0
	price, err = repo.Estimate(context.Background(), EstimateQuery{
		Make:    "honda",
		Model:   "civic",
		Year:    &year,
		Lng:     &farLng,
		Lat:     &lat,
		Mileage: &mileage,
	})
	require.NoError(t, err)
	assert.Nil(t, price)
}
