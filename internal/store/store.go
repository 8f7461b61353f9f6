package store

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"property-management/internal/database"
	"property-management/internal/models"
)

// Store groups the entity repositories over one connection or transaction.
type Store struct {
	db     *gorm.DB
	txOpts *sql.TxOptions

	Properties          Repository[models.Property]
	Tenants             Repository[models.Tenant]
	Leases              Repository[models.Lease]
	MaintenanceRequests Repository[models.MaintenanceRequest]
	Transactions        Repository[models.Transaction]
	Files               Repository[models.File]
}

// New builds a Store on an opened database, using its configured isolation.
func New(gdb *database.GormDB) *Store {
	return NewFromDB(gdb.DB(), gdb.TxOptions())
}

// NewFromDB builds a Store on a raw gorm handle. txOpts may be nil.
func NewFromDB(db *gorm.DB, txOpts *sql.TxOptions) *Store {
	return &Store{
		db:                  db,
		txOpts:              txOpts,
		Properties:          NewRepository[models.Property](db, "property"),
		Tenants:             NewRepository[models.Tenant](db, "tenant"),
		Leases:              NewRepository[models.Lease](db, "lease"),
		MaintenanceRequests: NewRepository[models.MaintenanceRequest](db, "maintenance request"),
		Transactions:        NewRepository[models.Transaction](db, "transaction"),
		Files:               NewRepository[models.File](db, "file"),
	}
}

// DB returns the underlying gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a single database transaction. The transaction
// commits when fn returns nil and rolls back otherwise; a failed commit is
// returned as-is so callers can classify it.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	run := func(tx *gorm.DB) error {
		return fn(NewFromDB(tx, s.txOpts))
	}
	if s.txOpts != nil {
		return s.db.WithContext(ctx).Transaction(run, s.txOpts)
	}
	return s.db.WithContext(ctx).Transaction(run)
}

// DeleteProperty removes a property that has never been leased.
func (s *Store) DeleteProperty(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		return tx.deleteWithoutLeases(ctx, tx.Properties.Delete, tx.Properties.Exists, "property", id, ListOptions{PropertyID: &id})
	})
}

// DeleteTenant removes a tenant that has never held a lease.
func (s *Store) DeleteTenant(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		return tx.deleteWithoutLeases(ctx, tx.Tenants.Delete, tx.Tenants.Exists, "tenant", id, ListOptions{TenantID: &id})
	})
}

func (s *Store) deleteWithoutLeases(
	ctx context.Context,
	del func(context.Context, uint) error,
	exists func(context.Context, uint) (bool, error),
	name string,
	id uint,
	leaseFilter ListOptions,
) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %s %d: %w", name, id, ErrNotFound)
	}

	n, err := s.Leases.Count(ctx, leaseFilter)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("delete %s %d: %w", name, id, ErrHasLeases)
	}
	return del(ctx, id)
}

// ActiveLeaseCount returns the number of active leases held by a tenant.
func (s *Store) ActiveLeaseCount(ctx context.Context, tenantID uint) (int64, error) {
	return s.Leases.Count(ctx, ListOptions{TenantID: &tenantID, Status: string(models.LeaseStatusActive)})
}
