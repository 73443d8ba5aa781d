package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-api/internal/middleware"
)

func TestRateRejectsOutOfRangeRatings(t *testing.T) {
	h := NewReviewHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "zero rating", body: `{"rating":0}`},
		{name: "negative rating", body: `{"rating":-3,"comment":"bad"}`},
		{name: "rating above five", body: `{"rating":6,"comment":"great"}`},
		{name: "missing rating", body: `{"comment":"no stars"}`},
		{name: "malformed body", body: `{"rating":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := postJSON(t, tt.body)
			c.Set(middleware.ContextUserID, uint(1))
			c.Params = gin.Params{{Key: "id", Value: "1"}}

			h.Rate(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestRateRejectsBadFacilityID(t *testing.T) {
	h := NewReviewHandler(nil)

	c, w := postJSON(t, `{"rating":4}`)
	c.Set(middleware.ContextUserID, uint(1))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Rate(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
