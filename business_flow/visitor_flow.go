// Package businessflow contains the business logic for the visitor register.
package businessflow

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/front-desk/visitor-register/app/dto"
	"github.com/front-desk/visitor-register/models"
	"github.com/front-desk/visitor-register/repository"
	"github.com/front-desk/visitor-register/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitorFlow handles the visitor check-in/check-out lifecycle
type VisitorFlow interface {
	Intake(ctx context.Context, request *dto.CreateVisitorRequest, metadata *ClientMetadata) (*dto.VisitorResponse, error)
	ListActive(ctx context.Context) ([]dto.VisitorResponse, error)
	ListPast(ctx context.Context) ([]dto.VisitorResponse, error)
	Checkout(ctx context.Context, id uuid.UUID, metadata *ClientMetadata) (*dto.VisitorResponse, error)
	Metrics(ctx context.Context) (*dto.VisitorMetricsResponse, error)
}

// VisitorFlowImpl implements the visitor business flow
type VisitorFlowImpl struct {
	visitorRepo repository.VisitorRepository
	db          *gorm.DB
	timezone    *time.Location
}

// NewVisitorFlow creates a new visitor flow instance
func NewVisitorFlow(
	visitorRepo repository.VisitorRepository,
	db *gorm.DB,
	timezone *time.Location,
) VisitorFlow {
	if timezone == nil {
		timezone = time.UTC
	}
	return &VisitorFlowImpl{
		visitorRepo: visitorRepo,
		db:          db,
		timezone:    timezone,
	}
}

// Intake registers a new visit. The conflict check against an existing active
// visit for the same national ID and the insert run in one transaction; the
// partial unique index on (tc_kimlik) WHERE is_active backstops the invariant
// against concurrent intakes.
func (vf *VisitorFlowImpl) Intake(ctx context.Context, request *dto.CreateVisitorRequest, metadata *ClientMetadata) (*dto.VisitorResponse, error) {
	var visitor *models.Visitor

	err := repository.WithTransaction(ctx, vf.db, func(txCtx context.Context) error {
		existing, err := vf.visitorRepo.ActiveByNationalID(txCtx, request.NationalID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrActiveVisitExists
		}

		birthYear := 0
		if request.BirthYear != nil {
			birthYear = *request.BirthYear
		}

		visitor = &models.Visitor{
			NationalID:     request.NationalID,
			FirstName:      request.FirstName,
			LastName:       request.LastName,
			BirthYear:      birthYear,
			ReasonForVisit: request.ReasonForVisit,
			EntryTime:      utils.UTCNow(),
			IsActive:       true,
		}

		return vf.visitorRepo.Save(txCtx, visitor)
	})
	if err != nil {
		if IsActiveVisitExists(err) {
			return nil, err
		}
		// A concurrent intake can slip past the read; the partial unique
		// index then reports the loser as a duplicate key.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrActiveVisitExists
		}
		return nil, NewBusinessError("VISITOR_INTAKE_FAILED", "Visitor intake failed", err)
	}

	log.Printf("New visitor checked in: %s %s", visitor.FirstName, visitor.LastName)

	resp := ToVisitorResponse(*visitor)
	return &resp, nil
}

// ListActive returns every active visit, most recent entry first.
func (vf *VisitorFlowImpl) ListActive(ctx context.Context) ([]dto.VisitorResponse, error) {
	active := true
	visitors, err := vf.visitorRepo.ByFilter(ctx, models.VisitorFilter{IsActive: &active}, "entry_time DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("VISITOR_LIST_FAILED", "Failed to list active visitors", err)
	}

	return ToVisitorResponses(visitors), nil
}

// ListPast returns every finished visit, most recent exit first.
func (vf *VisitorFlowImpl) ListPast(ctx context.Context) ([]dto.VisitorResponse, error) {
	active := false
	visitors, err := vf.visitorRepo.ByFilter(ctx, models.VisitorFilter{IsActive: &active}, "exit_time DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("VISITOR_LIST_FAILED", "Failed to list past visitors", err)
	}

	return ToVisitorResponses(visitors), nil
}

// Checkout finishes an active visit. A second checkout on the same id is an
// error, not a no-op. The read and the write run in one transaction.
func (vf *VisitorFlowImpl) Checkout(ctx context.Context, id uuid.UUID, metadata *ClientMetadata) (*dto.VisitorResponse, error) {
	var visitor *models.Visitor

	err := repository.WithTransaction(ctx, vf.db, func(txCtx context.Context) error {
		var err error
		visitor, err = vf.visitorRepo.ByID(txCtx, id)
		if err != nil {
			return err
		}
		if visitor == nil {
			return ErrVisitorNotFound
		}
		if !visitor.IsActive {
			return ErrAlreadyCheckedOut
		}

		exitTime := utils.UTCNow()
		durationMinutes := int(math.Round(exitTime.Sub(visitor.EntryTime).Minutes()))

		if err := vf.visitorRepo.Checkout(txCtx, id, exitTime, durationMinutes); err != nil {
			return err
		}

		visitor.IsActive = false
		visitor.ExitTime = &exitTime
		visitor.DurationMinutes = &durationMinutes

		return nil
	})
	if err != nil {
		if IsVisitorNotFound(err) || IsAlreadyCheckedOut(err) {
			return nil, err
		}
		return nil, NewBusinessError("VISITOR_CHECKOUT_FAILED", "Visitor checkout failed", err)
	}

	log.Printf("Visitor checked out: %s %s", visitor.FirstName, visitor.LastName)

	resp := ToVisitorResponse(*visitor)
	return &resp, nil
}

// Metrics returns the dashboard aggregates. The "today" window is the current
// calendar date in the configured timezone, not the database's ambient zone.
func (vf *VisitorFlowImpl) Metrics(ctx context.Context) (*dto.VisitorMetricsResponse, error) {
	startOfDay, nextDay := utils.DayBounds(utils.UTCNow(), vf.timezone)

	visitorsToday, err := vf.visitorRepo.CountEnteredBetween(ctx, startOfDay, nextDay)
	if err != nil {
		return nil, NewBusinessError("VISITOR_METRICS_FAILED", "Failed to compute visitor metrics", err)
	}

	active := true
	activeVisitors, err := vf.visitorRepo.Count(ctx, models.VisitorFilter{IsActive: &active})
	if err != nil {
		return nil, NewBusinessError("VISITOR_METRICS_FAILED", "Failed to compute visitor metrics", err)
	}

	avgDuration, err := vf.visitorRepo.AverageDurationMinutes(ctx)
	if err != nil {
		return nil, NewBusinessError("VISITOR_METRICS_FAILED", "Failed to compute visitor metrics", err)
	}

	return &dto.VisitorMetricsResponse{
		VisitorsToday:               visitorsToday,
		ActiveVisitors:              activeVisitors,
		AverageVisitDurationMinutes: avgDuration,
	}, nil
}
