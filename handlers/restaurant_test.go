package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestRestaurantHandlersRejectBadIDs(t *testing.T) {
	db := &DB{}

	r := mux.NewRouter()
	r.HandleFunc("/api/restaurants/{id}", db.GetRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu", db.GetRestaurantMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", db.DeleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/menu-items/{id}", db.DeleteMenuItem).Methods("DELETE")

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"get restaurant", http.MethodGet, "/api/restaurants/nope"},
		{"get menu", http.MethodGet, "/api/restaurants/nope/menu"},
		{"delete restaurant", http.MethodDelete, "/api/restaurants/nope"},
		{"delete menu item", http.MethodDelete, "/api/menu-items/nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var env Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}
			if env.Success {
				t.Fatal("success = true on a rejected id")
			}
		})
	}
}
