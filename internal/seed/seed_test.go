package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-management/internal/logger"
	"property-management/internal/store"
	"property-management/internal/testutil"
)

func TestRun_Idempotent(t *testing.T) {
	st := store.New(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	first, err := Run(ctx, st, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &Result{PropertiesCreated: 2, TenantsCreated: 2}, first)

	second, err := Run(ctx, st, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &Result{PropertiesSkipped: 2, TenantsSkipped: 2}, second)

	props, err := st.Properties.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "100 Test Ave", props[0].Address)
	assert.Equal(t, "900.00", props[0].RentAmount.Decimal.StringFixed(2))
	assert.False(t, props[1].IsAvailable())

	n, err := st.Tenants.Count(ctx, store.ListOptions{Status: "active"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRun_FillsGaps(t *testing.T) {
	st := store.New(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	existing := SampleTenants()[0]
	require.NoError(t, st.Tenants.Create(ctx, &existing))

	res, err := Run(ctx, st, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TenantsCreated)
	assert.Equal(t, 1, res.TenantsSkipped)
	assert.Equal(t, 2, res.PropertiesCreated)
}
