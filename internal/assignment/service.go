// Package assignment binds an approved tenant to an available property by
// creating a lease, as one atomic unit of work.
package assignment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"property-management/internal/database"
	"property-management/internal/logger"
	"property-management/internal/models"
	"property-management/internal/store"
)

// Outcome labels reported to a Recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Recorder receives one outcome per assignment attempt.
type Recorder interface {
	RecordAssignment(outcome string)
}

// Result is the tenant after assignment plus the new tenancy.
type Result struct {
	Tenant     models.Tenant
	Property   models.Property
	PropertyID uint
	Lease      models.Lease
}

type Service struct {
	store         *store.Store
	now           func() time.Time
	allowReassign bool
	log           *logger.Logger
	recorder      Recorder
}

type Option func(*Service)

// WithClock overrides the clock used for the lease start date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithAllowActiveTenantReassign controls whether a tenant who already holds
// an active lease may be assigned to another property.
func WithAllowActiveTenantReassign(allow bool) Option {
	return func(s *Service) { s.allowReassign = allow }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:         st,
		now:           time.Now,
		allowReassign: true,
		log:           logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssignTenantToProperty activates the tenant, marks the property rented and
// records an open-ended active lease at the property's current rent.
//
// The tenant is checked before the property. The property row is locked for
// the rest of the transaction and the status flip is conditional on the row
// still being available, so two concurrent calls for one property cannot both
// succeed. Nothing is written unless every step succeeds.
func (s *Service) AssignTenantToProperty(ctx context.Context, tenantID, propertyID uint) (*Result, error) {
	var result *Result

	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		tenant, err := tx.Tenants.Get(ctx, tenantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTenantNotFound
			}
			return txError("load tenant", err)
		}

		property, err := tx.Properties.GetForUpdate(ctx, propertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPropertyNotFound
			}
			return txError("lock property", err)
		}

		if !property.IsAvailable() {
			return ErrPropertyUnavailable
		}

		if !s.allowReassign {
			active, err := tx.ActiveLeaseCount(ctx, tenantID)
			if err != nil {
				return txError("count active leases", err)
			}
			if active > 0 {
				return ErrTenantHasActiveLease
			}
		}

		n, err := tx.Properties.UpdateWhere(ctx, propertyID,
			map[string]interface{}{"status": string(models.PropertyStatusRented)},
			"LOWER(TRIM(COALESCE(status, ''))) NOT IN ?", models.UnavailablePropertyStatuses)
		if err != nil {
			return txError("mark property rented", err)
		}
		if n == 0 {
			return ErrPropertyUnavailable
		}

		if _, err := tx.Tenants.UpdateWhere(ctx, tenantID,
			map[string]interface{}{"status": string(models.TenantStatusActive)}, ""); err != nil {
			return txError("activate tenant", err)
		}

		lease := models.Lease{
			PropertyID: property.ID,
			TenantID:   tenant.ID,
			StartDate:  models.DateOnly(s.now()),
			RentAmount: property.RentAmount,
			Status:     models.LeaseStatusActive,
		}
		if err := tx.Leases.Create(ctx, &lease); err != nil {
			return txError("create lease", err)
		}

		tenant.Activate()
		property.MarkAsRented()
		result = &Result{Tenant: *tenant, Property: *property, PropertyID: property.ID, Lease: lease}
		return nil
	})

	if err != nil {
		err = classify(err)
		s.record(ctx, err, tenantID, propertyID)
		return nil, err
	}

	s.record(ctx, nil, tenantID, propertyID)
	return result, nil
}

// classify leaves workflow errors alone and turns anything else, which can
// only come from BEGIN or COMMIT, into a TransactionError.
func classify(err error) error {
	var txErr *TransactionError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.As(err, &txErr) {
		return err
	}
	return txError("commit", err)
}

func txError(op string, err error) *TransactionError {
	return &TransactionError{Op: op, Err: err, Retryable: database.IsRetryable(err)}
}

func (s *Service) record(ctx context.Context, err error, tenantID, propertyID uint) {
	outcome := OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = OutcomeNotFound
	case errors.Is(err, ErrConflict):
		outcome = OutcomeConflict
	default:
		outcome = OutcomeError
	}
	if s.recorder != nil {
		s.recorder.RecordAssignment(outcome)
	}

	fields := []zap.Field{
		zap.Uint("tenant_id", tenantID),
		zap.Uint("property_id", propertyID),
		zap.String("outcome", outcome),
	}
	log := s.log.WithContext(ctx)
	switch outcome {
	case OutcomeSuccess:
		log.Info("tenant assigned to property", fields...)
	case OutcomeError:
		log.Error("tenant assignment failed", append(fields, zap.Error(err))...)
	default:
		log.Info("tenant assignment rejected", append(fields, zap.Error(err))...)
	}
}
