package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyCRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/properties/", map[string]interface{}{
		"address":     "100 Test Ave",
		"bedrooms":    2,
		"bathrooms":   1.5,
		"rent_amount": 900,
		"status":      "vacant",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "100 Test Ave", created["address"])
	assert.Equal(t, "900.00", created["rent_amount"])
	assert.EqualValues(t, 2, created["bedrooms"])
	assert.NotNil(t, created["created_at"])
	id := uint(created["id"].(float64))

	w = s.do(t, http.MethodGet, fmt.Sprintf("/properties/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vacant", decode(t, w)["status"])

	w = s.do(t, http.MethodGet, "/properties/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	assert.EqualValues(t, 1, list["Count"])
	assert.Len(t, list["value"], 1)
}

func TestPropertyCreate_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/properties/", map[string]interface{}{"bedrooms": -1})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"loc":["body","address"]`)
	assert.Contains(t, body, `"loc":["body","bedrooms"]`)

	w = s.do(t, http.MethodPost, "/properties/", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPropertyList_Filters(t *testing.T) {
	s := newTestServer(t)
	for i, status := range []string{"vacant", "rented", "vacant"} {
		s.createProperty(t, map[string]interface{}{"address": fmt.Sprintf("%d Elm St", i), "status": status})
	}

	w := s.do(t, http.MethodGet, "/properties/?status=vacant", nil)
	assert.EqualValues(t, 2, decode(t, w)["Count"])

	w = s.do(t, http.MethodGet, "/properties/?skip=1&limit=1", nil)
	list := decode(t, w)
	assert.EqualValues(t, 1, list["Count"])
	assert.Equal(t, "1 Elm St", list["value"].([]interface{})[0].(map[string]interface{})["address"])
}

func TestPropertyPutClearsNulls(t *testing.T) {
	s := newTestServer(t)
	id := s.createProperty(t, map[string]interface{}{"address": "1 Main", "bedrooms": 3, "rent_amount": 1200})

	w := s.do(t, http.MethodPut, fmt.Sprintf("/properties/%d", id), map[string]interface{}{
		"address":     "1 Main St",
		"bedrooms":    nil,
		"rent_amount": 1250.5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "1 Main St", body["address"])
	assert.Nil(t, body["bedrooms"])
	assert.Equal(t, "1250.50", body["rent_amount"])
}

func TestPropertyPutRequiresAddress(t *testing.T) {
	s := newTestServer(t)
	id := s.createProperty(t, map[string]interface{}{"address": "1 Main"})

	w := s.do(t, http.MethodPut, fmt.Sprintf("/properties/%d", id), map[string]interface{}{"bedrooms": 1})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPropertyPatchIgnoresNulls(t *testing.T) {
	s := newTestServer(t)
	id := s.createProperty(t, map[string]interface{}{"address": "1 Main", "bedrooms": 3, "status": "vacant"})

	w := s.do(t, http.MethodPatch, fmt.Sprintf("/properties/%d", id), map[string]interface{}{
		"address":  nil,
		"bedrooms": nil,
		"status":   "maintenance",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "1 Main", body["address"])
	assert.EqualValues(t, 3, body["bedrooms"])
	assert.Equal(t, "maintenance", body["status"])
}

func TestPropertyPatch_Validation(t *testing.T) {
	s := newTestServer(t)
	id := s.createProperty(t, map[string]interface{}{"address": "1 Main"})

	w := s.do(t, http.MethodPatch, fmt.Sprintf("/properties/%d", id), map[string]interface{}{
		"address":     " ",
		"rent_amount": -10,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"loc":["body","address"]`)
	assert.Contains(t, w.Body.String(), `"loc":["body","rent_amount"]`)
}

func TestPropertyUpdate_NotFound(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPatch, "/properties/42", map[string]interface{}{"status": "vacant"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Property not found"}`, w.Body.String())
}

func TestPropertyDelete(t *testing.T) {
	s := newTestServer(t)
	id := s.createProperty(t, map[string]interface{}{"address": "1 Main"})

	w := s.do(t, http.MethodDelete, fmt.Sprintf("/properties/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"message":"Property %d deleted successfully"}`, id), w.Body.String())

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/properties/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Property not found"}`, w.Body.String())
}

func TestPropertyDelete_WithLeases(t *testing.T) {
	s := newTestServer(t)
	pid := s.createProperty(t, map[string]interface{}{"address": "1 Main", "status": "vacant"})
	tid := s.createTenant(t, map[string]interface{}{"first_name": "Ana"})

	w := s.do(t, http.MethodPost, fmt.Sprintf("/tenants/%d/assign/%d", tid, pid), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/properties/%d", pid), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"Property has leases"}`, w.Body.String())

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/tenants/%d", tid), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"Tenant has leases"}`, w.Body.String())
}
