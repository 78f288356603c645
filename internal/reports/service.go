package reports

import (
	"context"
	"errors"
	"fmt"

	dbmodels "github.com/mrivera-dev/carvalue-backend/pkg/db/models"
	pkgerrors "github.com/mrivera-dev/carvalue-backend/pkg/errors"
	"gorm.io/gorm"
)

const reportNotFoundMessage = "report not found"

// Service defines the behavior needed by the reports controller.
type Service interface {
	Create(ctx context.Context, ownerID uint, input CreateReportInput) (*ReportDTO, error)
	ChangeApproval(ctx context.Context, id uint, approved bool) (*ReportDTO, error)
	Estimate(ctx context.Context, query EstimateQuery) (*EstimateDTO, error)
}

type service struct {
	reports reportRepository
}

type reportRepository interface {
	Create(ctx context.Context, report *dbmodels.Report) (*dbmodels.Report, error)
	UpdateApproval(ctx context.Context, id uint, approved bool) (*dbmodels.Report, error)
	Estimate(ctx context.Context, query EstimateQuery) (*float64, error)
}

// ServiceParams bundles the dependencies required to build a reports service.
type ServiceParams struct {
	ReportRepo reportRepository
}

// NewService constructs a reports service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReportRepo == nil {
		return nil, fmt.Errorf("report repository is required")
	}
	return &service{reports: params.ReportRepo}, nil
}

// Create persists a new sale report owned by the given user. New reports
// always start out unapproved, whatever the client sends.
func (s *service) Create(ctx context.Context, ownerID uint, input CreateReportInput) (*ReportDTO, error) {
	report, err := s.reports.Create(ctx, input.toModel(ownerID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create report")
	}
	return FromModel(report), nil
}

// ChangeApproval sets the approval flag. Re-applying the current value is
// allowed and returns the unchanged report.
func (s *service) ChangeApproval(ctx context.Context, id uint, approved bool) (*ReportDTO, error) {
	report, err := s.reports.UpdateApproval(ctx, id, approved)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, reportNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update approval")
	}
	return FromModel(report), nil
}

func (s *service) Estimate(ctx context.Context, query EstimateQuery) (*EstimateDTO, error) {
	price, err := s.reports.Estimate(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "estimate price")
	}
	return &EstimateDTO{Price: price}, nil
}
