package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/itsmahmudul/ridebite-server/models"

	"github.com/gorilla/mux"
)

func TestAssignRide(t *testing.T) {
	now := time.Now()

	for vt, profile := range vehicleProfiles {
		t.Run(string(vt), func(t *testing.T) {
			for i := 0; i < 500; i++ {
				driver, fare, eta := assignRide(vt, now)

				found := false
				for _, name := range profile.Drivers {
					if driver == name {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("driver %q not in the %s pool", driver, vt)
				}

				if fare < profile.MinFare || fare > profile.MaxFare {
					t.Fatalf("fare %d outside [%d,%d] for %s", fare, profile.MinFare, profile.MaxFare, vt)
				}

				if eta.Before(now.Add(minArrivalOffset)) || eta.After(now.Add(maxArrivalOffset)) {
					t.Fatalf("eta %v outside [now+5m, now+15m]", eta)
				}
			}
		})
	}
}

func TestCarFareMatchesAdvertisedRange(t *testing.T) {
	// The car range is part of the public contract: fares land in [8,25].
	p := vehicleProfiles[models.VehicleCar]
	if p.MinFare != 8 || p.MaxFare != 25 {
		t.Fatalf("car fare range = [%d,%d], want [8,25]", p.MinFare, p.MaxFare)
	}
}

func TestBookRideValidation(t *testing.T) {
	// Validation failures reply before any store call, so an empty DB works.
	db := &DB{}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing customerName", `{"pickup":"X","destination":"Y","vehicleType":"car"}`, http.StatusBadRequest},
		{"missing pickup", `{"customerName":"A","destination":"Y","vehicleType":"car"}`, http.StatusBadRequest},
		{"missing destination", `{"customerName":"A","pickup":"X","vehicleType":"car"}`, http.StatusBadRequest},
		{"missing vehicleType", `{"customerName":"A","pickup":"X","destination":"Y"}`, http.StatusBadRequest},
		{"unknown vehicleType", `{"customerName":"A","pickup":"X","destination":"Y","vehicleType":"plane"}`, http.StatusBadRequest},
		{"malformed body", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/rides", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			db.BookRide(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}

			var env Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid response JSON: %v", err)
			}
			if env.Success {
				t.Fatal("success = true on a rejected booking")
			}
			if env.Error == "" {
				t.Fatal("error message missing")
			}
		})
	}
}

func TestUpdateRideStatusRejectsUnknownStatus(t *testing.T) {
	db := &DB{}

	r := mux.NewRouter()
	r.HandleFunc("/api/rides/{id}/status", db.UpdateRideStatus).Methods("PATCH")

	tests := []struct {
		name string
		body string
	}{
		{"unknown status", `{"status":"teleported"}`},
		{"empty status", `{}`},
		{"malformed body", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/rides/507f1f77bcf86cd799439011/status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestUpdateRideStatusRejectsBadID(t *testing.T) {
	db := &DB{}

	r := mux.NewRouter()
	r.HandleFunc("/api/rides/{id}/status", db.UpdateRideStatus).Methods("PATCH")

	req := httptest.NewRequest(http.MethodPatch, "/api/rides/not-a-hex-id/status", strings.NewReader(`{"status":"completed"}`))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetRideRejectsBadID(t *testing.T) {
	db := &DB{}

	r := mux.NewRouter()
	r.HandleFunc("/api/rides/{id}", db.GetRide).Methods("GET")

	req := httptest.NewRequest(http.MethodGet, "/api/rides/zzz", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
