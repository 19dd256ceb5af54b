package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RideStatus is the enumerated lifecycle state of a ride.
type RideStatus string

const (
	RideConfirmed      RideStatus = "confirmed"
	RideDriverAssigned RideStatus = "driver_assigned"
	RidePickedUp       RideStatus = "picked_up"
	RideInProgress     RideStatus = "in_progress"
	RideCompleted      RideStatus = "completed"
	RideCancelled      RideStatus = "cancelled"
)

// RideStatuses lists every accepted ride status.
var RideStatuses = []RideStatus{
	RideConfirmed,
	RideDriverAssigned,
	RidePickedUp,
	RideInProgress,
	RideCompleted,
	RideCancelled,
}

func (s RideStatus) Valid() bool {
	for _, known := range RideStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// VehicleType is the kind of vehicle a ride can be booked with.
type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
	VehicleAuto VehicleType = "auto"
)

var VehicleTypes = []VehicleType{VehicleCar, VehicleBike, VehicleAuto}

func (v VehicleType) Valid() bool {
	for _, known := range VehicleTypes {
		if v == known {
			return true
		}
	}
	return false
}

// Restaurant is a listed restaurant.
type Restaurant struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name    string             `json:"name" bson:"name"`
	Cuisine string             `json:"cuisine,omitempty" bson:"cuisine,omitempty"`
	Address string             `json:"address,omitempty" bson:"address,omitempty"`
	Rating  float64            `json:"rating,omitempty" bson:"rating,omitempty"`
}

// MenuItem belongs to exactly one restaurant via RestaurantID.
type MenuItem struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID primitive.ObjectID `json:"restaurantId" bson:"restaurantId"`
	Name         string             `json:"name" bson:"name"`
	Price        float64            `json:"price" bson:"price"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
}

type OrderItem struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

// Order is a placed food order. OrderID is the app-generated "RB<millis>"
// string customers track the order with; ID is the store identifier.
type Order struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderID           string             `json:"orderId" bson:"orderId"`
	RestaurantID      string             `json:"restaurantId" bson:"restaurantId"`
	Items             []OrderItem        `json:"items" bson:"items"`
	CustomerName      string             `json:"customerName" bson:"customerName"`
	CustomerPhone     string             `json:"customerPhone" bson:"customerPhone"`
	DeliveryAddress   string             `json:"deliveryAddress" bson:"deliveryAddress"`
	TotalAmount       float64            `json:"totalAmount" bson:"totalAmount"`
	Status            string             `json:"status" bson:"status"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery" bson:"estimatedDelivery"`
}

// Ride is a booked ride. Driver and fare are assigned by the server at
// booking time; Status moves through RideStatuses with no ordering rules.
type Ride struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName     string             `json:"customerName" bson:"customerName"`
	Pickup           string             `json:"pickup" bson:"pickup"`
	Destination      string             `json:"destination" bson:"destination"`
	VehicleType      VehicleType        `json:"vehicleType" bson:"vehicleType"`
	DriverName       string             `json:"driverName" bson:"driverName"`
	Fare             int                `json:"fare" bson:"fare"`
	EstimatedArrival time.Time          `json:"estimatedArrival" bson:"estimatedArrival"`
	Status           RideStatus         `json:"status" bson:"status"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}
