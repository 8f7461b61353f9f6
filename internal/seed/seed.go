// Package seed inserts sample properties and tenants for local development.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"property-management/internal/logger"
	"property-management/internal/models"
	"property-management/internal/store"
)

// Result counts the rows a Run inserted and the rows it found already present.
type Result struct {
	PropertiesCreated int
	PropertiesSkipped int
	TenantsCreated    int
	TenantsSkipped    int
}

func ptr[T any](v T) *T { return &v }

// SampleProperties are matched by address.
func SampleProperties() []models.Property {
	return []models.Property{
		{
			Address:    "100 Test Ave",
			Bedrooms:   ptr(2),
			Bathrooms:  ptr(1.5),
			Area:       ptr(800.0),
			RentAmount: decimal.NewNullDecimal(decimal.RequireFromString("900.00")),
			Status:     ptr(string(models.PropertyStatusVacant)),
		},
		{
			Address:    "200 Sample Rd",
			Bedrooms:   ptr(3),
			Bathrooms:  ptr(2.0),
			Area:       ptr(1200.0),
			RentAmount: decimal.NewNullDecimal(decimal.RequireFromString("1400.00")),
			Status:     ptr(string(models.PropertyStatusRented)),
		},
	}
}

// SampleTenants are matched by email.
func SampleTenants() []models.Tenant {
	return []models.Tenant{
		{
			FirstName: ptr("Test"),
			LastName:  ptr("User"),
			Email:     ptr("test.user+seed@example.com"),
			Phone:     ptr("555-0001"),
			Status:    ptr(string(models.TenantStatusActive)),
		},
		{
			FirstName: ptr("Alice"),
			LastName:  ptr("Example"),
			Email:     ptr("alice.example+seed@example.com"),
			Phone:     ptr("555-0002"),
			Status:    ptr(string(models.TenantStatusActive)),
		},
	}
}

// Run inserts whatever sample rows are missing in a single transaction.
// Running it twice leaves the database unchanged the second time.
func Run(ctx context.Context, st *store.Store, log *logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.Get()
	}
	res := &Result{}

	err := st.Transaction(ctx, func(tx *store.Store) error {
		db := tx.DB().WithContext(ctx)

		for _, p := range SampleProperties() {
			var n int64
			if err := db.Model(&models.Property{}).Where("address = ?", p.Address).Count(&n).Error; err != nil {
				return fmt.Errorf("look up property %q: %w", p.Address, err)
			}
			if n > 0 {
				res.PropertiesSkipped++
				continue
			}
			if err := tx.Properties.Create(ctx, &p); err != nil {
				return err
			}
			res.PropertiesCreated++
		}

		for _, t := range SampleTenants() {
			var n int64
			if err := db.Model(&models.Tenant{}).Where("email = ?", *t.Email).Count(&n).Error; err != nil {
				return fmt.Errorf("look up tenant %q: %w", *t.Email, err)
			}
			if n > 0 {
				res.TenantsSkipped++
				continue
			}
			if err := tx.Tenants.Create(ctx, &t); err != nil {
				return err
			}
			res.TenantsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	log.Info("seed complete",
		zap.Int("properties_created", res.PropertiesCreated),
		zap.Int("properties_skipped", res.PropertiesSkipped),
		zap.Int("tenants_created", res.TenantsCreated),
		zap.Int("tenants_skipped", res.TenantsSkipped))
	return res, nil
}
