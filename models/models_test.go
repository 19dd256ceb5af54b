package models

import "testing"

func TestRideStatusValid(t *testing.T) {
	tests := []struct {
		status RideStatus
		want   bool
	}{
		{RideConfirmed, true},
		{RideDriverAssigned, true},
		{RidePickedUp, true},
		{RideInProgress, true},
		{RideCompleted, true},
		{RideCancelled, true},
		{RideStatus(""), false},
		{RideStatus("CONFIRMED"), false},
		{RideStatus("delivered"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.want {
			t.Errorf("RideStatus(%q).Valid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestVehicleTypeValid(t *testing.T) {
	tests := []struct {
		vt   VehicleType
		want bool
	}{
		{VehicleCar, true},
		{VehicleBike, true},
		{VehicleAuto, true},
		{VehicleType(""), false},
		{VehicleType("plane"), false},
		{VehicleType("Car"), false},
	}

	for _, tt := range tests {
		if got := tt.vt.Valid(); got != tt.want {
			t.Errorf("VehicleType(%q).Valid() = %v, want %v", tt.vt, got, tt.want)
		}
	}
}
