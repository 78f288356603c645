package reports

import (
	"context"
	"testing"

	dbmodels "github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubReportRepo struct {
	reports   map[uint]*dbmodels.Report
	nextID    uint
	estimate  *float64
	lastQuery EstimateQuery
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: map[uint]*dbmodels.Report{}, nextID: 1}
}

func (r *stubReportRepo) Create(_ context.Context, report *dbmodels.Report) (*dbmodels.Report, error) {
	report.ID = r.nextID
	r.nextID++
	r.reports[report.ID] = report
	return report, nil
}

func (r *stubReportRepo) UpdateApproval(_ context.Context, id uint, approved bool) (*dbmodels.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	report.Approved = approved
	return report, nil
}

func (r *stubReportRepo) Estimate(_ context.Context, query EstimateQuery) (*float64, error) {
	r.lastQuery = query
	return r.estimate, nil
}

func buildTestService(t *testing.T) (Service, *stubReportRepo) {
	t.Helper()
	repo := newStubReportRepo()
	svc, err := NewService(ServiceParams{ReportRepo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, repo
}

func civicInput() CreateReportInput {
	price := 10000.0
	year := 2018
	lng := -122.33
	lat := 47.6
	mileage := int64(30000)
	return CreateReportInput{
		Price:   &price,
		Make:    "honda",
		Model:   "civic",
		Year:    &year,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	}
}

func TestServiceCreateStartsUnapproved(t *testing.T) {
	svc, repo := buildTestService(t)

	report, err := svc.Create(context.Background(), 9, civicInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if report.Approved {
		t.Fatalf("new reports must start unapproved")
	}
	if report.UserID != 9 {
		t.Fatalf("expected owner 9, got %d", report.UserID)
	}
	if report.Price != 10000 {
		t.Fatalf("expected price 10000, got %v", report.Price)
	}

	stored := repo.reports[report.ID]
	if !stored.Price.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected decimal price 10000, got %s", stored.Price)
	}
}

func TestServiceChangeApproval(t *testing.T) {
	svc, _ := buildTestService(t)

	created, err := svc.Create(context.Background(), 1, civicInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	approved, err := svc.ChangeApproval(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !approved.Approved {
		t.Fatalf("expected approved report")
	}

	// Re-applying the same value is idempotent.
	again, err := svc.ChangeApproval(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if !again.Approved {
		t.Fatalf("expected approval to stick")
	}
}

func TestServiceChangeApprovalMissingReport(t *testing.T) {
	svc, _ := buildTestService(t)

	_, err := svc.ChangeApproval(context.Background(), 404, true)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestServiceEstimatePassesQueryThrough(t *testing.T) {
	svc, repo := buildTestService(t)
	value := 12500.0
	repo.estimate = &value

	year := 2018
	lng := -122.33
	lat := 47.6
	mileage := int64(30000)
	estimate, err := svc.Estimate(context.Background(), EstimateQuery{
		Make:    "honda",
		Model:   "civic",
		Year:    &year,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if estimate.Price == nil || *estimate.Price != 12500 {
		t.Fatalf("unexpected estimate: %+v", estimate)
	}
	if repo.lastQuery.Make != "honda" || repo.lastQuery.Model != "civic" {
		t.Fatalf("unexpected repo query: %+v", repo.lastQuery)
	}
}

func TestServiceEstimateNullWhenNoMatches(t *testing.T) {
	svc, _ := buildTestService(t)

	year := 2018
	lng := 0.0
	lat := 0.0
	mileage := int64(0)
	estimate, err := svc.Estimate(context.Background(), EstimateQuery{
		Make:    "saab",
		Model:   "900",
		Year:    &year,
		Lng:     &lng,
		Lat:     &lat,
		Mileage: &mileage,
	})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if estimate.Price != nil {
		t.Fatalf("expected null price, got %v", *estimate.Price)
	}
}
