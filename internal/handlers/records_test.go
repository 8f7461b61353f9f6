package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceLifecycle(t *testing.T) {
	s := newTestServer(t)
	pid := s.createProperty(t, map[string]interface{}{"address": "1 Main"})

	w := s.do(t, http.MethodPost, "/maintenance-requests/", map[string]interface{}{
		"property_id": pid,
		"description": "Leaking tap",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "open", created["status"])
	assert.Nil(t, created["completed_at"])
	id := uint(created["id"].(float64))

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/maintenance-requests/%d", id), map[string]interface{}{"status": "In_Progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "in_progress", decode(t, w)["status"])

	w = s.do(t, http.MethodPost, fmt.Sprintf("/maintenance-requests/%d/complete", id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := decode(t, w)
	assert.Equal(t, "completed", done["status"])
	assert.NotNil(t, done["completed_at"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/maintenance-requests/?property_id=%d&status=completed", pid), nil)
	assert.Len(t, decodeList(t, w), 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/maintenance-requests/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, fmt.Sprintf("/maintenance-requests/%d/complete", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Maintenance request not found"}`, w.Body.String())
}

func TestMaintenanceCreate_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/maintenance-requests/", map[string]interface{}{"status": "someday"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"loc":["body","property_id"]`)
	assert.Contains(t, body, `"loc":["body","description"]`)
	assert.Contains(t, body, `"loc":["body","status"]`)

	w = s.do(t, http.MethodPost, "/maintenance-requests/", map[string]interface{}{"property_id": 404, "description": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Property not found"}`, w.Body.String())
}

func TestTransactionsAndSummary(t *testing.T) {
	s := newTestServer(t)
	pid := s.createProperty(t, map[string]interface{}{"address": "1 Main"})
	other := s.createProperty(t, map[string]interface{}{"address": "2 Main"})

	entries := []map[string]interface{}{
		{"property_id": pid, "type": "revenue", "amount": 1400, "date": "2024-03-01"},
		{"property_id": pid, "type": "Expense", "amount": "250.25", "description": "Plumber"},
		{"property_id": other, "type": "revenue", "amount": 900},
	}
	for _, e := range entries {
		w := s.do(t, http.MethodPost, "/transactions/", e)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := s.do(t, http.MethodGet, fmt.Sprintf("/transactions/?property_id=%d", pid), nil)
	list := decodeList(t, w)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-01", list[0]["date"])
	assert.Equal(t, "1400.00", list[0]["amount"])
	assert.Equal(t, "expense", list[1]["type"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/transactions/summary?property_id=%d", pid), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{
		"property_id": %d,
		"total_revenue": "1400.00",
		"total_expenses": "250.25",
		"net_income": "1149.75",
		"transaction_count": 2
	}`, pid), w.Body.String())

	w = s.do(t, http.MethodGet, "/transactions/summary", nil)
	body := decode(t, w)
	assert.Equal(t, "2300.00", body["total_revenue"])
	assert.EqualValues(t, 3, body["transaction_count"])

	w = s.do(t, http.MethodGet, "/transactions/summary?property_id=999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionCreate_Validation(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/transactions/", map[string]interface{}{"type": "gift", "amount": -5})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"loc":["body","type"]`)
	assert.Contains(t, w.Body.String(), `"loc":["body","amount"]`)
}

func TestFilesCRUD(t *testing.T) {
	s := newTestServer(t)
	tid := s.createTenant(t, map[string]interface{}{"first_name": "Ana"})

	w := s.do(t, http.MethodPost, "/files/", map[string]interface{}{"tenant_id": tid})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/files/", map[string]interface{}{
		"tenant_id": tid,
		"file_name": "lease.pdf",
		"file_path": "/docs/lease.pdf",
		"file_type": "application/pdf",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	assert.NotNil(t, created["uploaded_at"])
	id := uint(created["id"].(float64))

	w = s.do(t, http.MethodPut, fmt.Sprintf("/files/%d", id), map[string]interface{}{"file_path": nil})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode(t, w)["file_path"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/files/?tenant_id=%d", tid), nil)
	assert.Len(t, decodeList(t, w), 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/files/%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/files/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	s.createProperty(t, map[string]interface{}{"address": "1 Main", "status": "vacant", "rent_amount": 450})
	pid := s.createProperty(t, map[string]interface{}{"address": "2 Main", "status": "vacant", "rent_amount": 1400})
	s.createProperty(t, map[string]interface{}{"address": "3 Main", "status": "Occupied"})
	s.createProperty(t, map[string]interface{}{"address": "4 Main", "status": "maintenance", "rent_amount": 3200})
	tid := s.createTenant(t, map[string]interface{}{"first_name": "Ana", "status": "applicant"})

	w := s.do(t, http.MethodPost, fmt.Sprintf("/tenants/%d/assign/%d", tid, pid), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/maintenance-requests/", map[string]interface{}{"property_id": pid, "description": "Door"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	assert.EqualValues(t, 4, stats["properties"])
	assert.EqualValues(t, 1, stats["tenants"])
	assert.EqualValues(t, 1, stats["active_leases"])
	assert.EqualValues(t, 0.5, stats["occupancy_rate"])
	assert.EqualValues(t, 1, stats["open_maintenance_requests"])

	w = s.do(t, http.MethodGet, "/admin/activity?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = s.do(t, http.MethodGet, "/admin/rent-distribution", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dist := decode(t, w)["rent_distribution"].([]interface{})
	counts := make([]float64, 0, len(dist))
	for _, r := range dist {
		counts = append(counts, r.(map[string]interface{})["count"].(float64))
	}
	assert.Equal(t, []float64{1, 0, 1, 0, 0, 1}, counts)

	w = s.do(t, http.MethodGet, "/admin/ratelimit", nil)
	assert.JSONEq(t, `{"enabled":false,"clients":0,"requests_last_minute":0,"requests_last_hour":0,"limit_per_minute":0,"limit_per_hour":0,"remaining_this_minute":0,"remaining_this_hour":0}`, w.Body.String())
}
