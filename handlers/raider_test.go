package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestRaiderDefaults(t *testing.T) {
	now := time.Now()
	defaults := raiderDefaults(now)

	if defaults["status"] != "available" {
		t.Fatalf("status default = %v, want available", defaults["status"])
	}
	if defaults["isActive"] != true {
		t.Fatalf("isActive default = %v, want true", defaults["isActive"])
	}
	if defaults["totalDeliveries"] != 0 {
		t.Fatalf("totalDeliveries default = %v, want 0", defaults["totalDeliveries"])
	}
	if defaults["rating"] != 0 {
		t.Fatalf("rating default = %v, want 0", defaults["rating"])
	}
	if defaults["joinedDate"] != now || defaults["lastActive"] != now {
		t.Fatal("joinedDate/lastActive defaults not set to the insertion time")
	}
}

func TestAddRaiderRejectsMalformedBody(t *testing.T) {
	db := &DB{}

	req := httptest.NewRequest(http.MethodPost, "/api/raiders", strings.NewReader(`[1,2,3]`))
	rec := httptest.NewRecorder()

	db.AddRaider(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRaiderHandlersRejectBadIDs(t *testing.T) {
	db := &DB{}

	r := mux.NewRouter()
	r.HandleFunc("/api/raiders/{id}", db.UpdateRaider).Methods("PUT")
	r.HandleFunc("/api/raiders/{id}", db.DeleteRaider).Methods("DELETE")

	tests := []struct {
		name   string
		method string
		body   string
	}{
		{"update", http.MethodPut, `{"rating":4.5}`},
		{"delete", http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/raiders/not-an-objectid", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}
