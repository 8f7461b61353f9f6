package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPropertyIsAvailable(t *testing.T) {
	tests := []struct {
		status *string
		want   bool
	}{
		{nil, true},
		{strPtr("vacant"), true},
		{strPtr("available"), true},
		{strPtr("maintenance"), true},
		{strPtr("rented"), false},
		{strPtr("Rented"), false},
		{strPtr("OCCUPIED"), false},
		{strPtr("  occupied "), false},
	}

	for _, tt := range tests {
		p := Property{Status: tt.status}
		assert.Equal(t, tt.want, p.IsAvailable(), "status %v", p.StatusString())
	}
}

func TestPropertyMarkAsRented(t *testing.T) {
	p := Property{Status: strPtr("vacant")}
	p.MarkAsRented()
	assert.Equal(t, "rented", p.StatusString())
	assert.False(t, p.IsAvailable())
}

func TestTenantActivate(t *testing.T) {
	tenant := Tenant{Status: strPtr("applicant")}
	assert.False(t, tenant.IsActive())
	tenant.Activate()
	assert.True(t, tenant.IsActive())
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 59, 1, 5, time.FixedZone("x", 3600))
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), DateOnly(in))
}

func TestMaintenanceIsCompleted(t *testing.T) {
	m := MaintenanceRequest{Status: strPtr("Completed")}
	assert.True(t, m.IsCompleted())
	m.Status = strPtr("open")
	assert.False(t, m.IsCompleted())
}
