package handlers

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"regexp"
	"time"

	"github.com/itsmahmudul/ridebite-server/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
)

// vehicleProfile is the fixed driver pool and inclusive fare range for one
// vehicle type.
type vehicleProfile struct {
	Drivers []string
	MinFare int
	MaxFare int
}

var vehicleProfiles = map[models.VehicleType]vehicleProfile{
	models.VehicleCar: {
		Drivers: []string{"Arif Hossain", "Kamal Uddin", "Rashed Khan", "Tanvir Ahmed", "Shafiq Islam"},
		MinFare: 8,
		MaxFare: 25,
	},
	models.VehicleBike: {
		Drivers: []string{"Rubel Mia", "Jashim Sheikh", "Imran Chowdhury", "Sabbir Rahman"},
		MinFare: 3,
		MaxFare: 12,
	},
	models.VehicleAuto: {
		Drivers: []string{"Abdul Karim", "Monir Hawlader", "Liton Das", "Faruk Bepari"},
		MinFare: 5,
		MaxFare: 18,
	},
}

// Arrival estimates are a uniform random offset within this window.
const (
	minArrivalOffset = 5 * time.Minute
	maxArrivalOffset = 15 * time.Minute
)

// assignRide picks a driver uniformly at random from the vehicle type's
// pool, an integer fare within its inclusive range, and an arrival
// estimate 5 to 15 minutes out.
func assignRide(vt models.VehicleType, now time.Time) (driver string, fare int, eta time.Time) {
	p := vehicleProfiles[vt]
	driver = p.Drivers[rand.Intn(len(p.Drivers))]
	fare = p.MinFare + rand.Intn(p.MaxFare-p.MinFare+1)
	offsetMinutes := int(minArrivalOffset.Minutes()) + rand.Intn(int(maxArrivalOffset.Minutes()-minArrivalOffset.Minutes())+1)
	eta = now.Add(time.Duration(offsetMinutes) * time.Minute)
	return driver, fare, eta
}

type bookRideRequest struct {
	CustomerName string             `json:"customerName"`
	Pickup       string             `json:"pickup"`
	Destination  string             `json:"destination"`
	VehicleType  models.VehicleType `json:"vehicleType"`
}

// BookRide creates a ride with a randomly assigned driver and fare, then
// re-reads the inserted document so the response reflects exactly what was
// stored.
func (db *DB) BookRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	_, span := otel.Tracer("ride-service").Start(r.Context(), "BookRide")
	defer span.End()

	var req bookRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		track("rides", "error", start)
		return
	}

	if req.CustomerName == "" || req.Pickup == "" || req.Destination == "" || req.VehicleType == "" {
		respondError(w, http.StatusBadRequest, "customerName, pickup, destination and vehicleType are required")
		track("rides", "error", start)
		return
	}
	if !req.VehicleType.Valid() {
		respondError(w, http.StatusBadRequest, "vehicleType must be one of car, bike or auto")
		track("rides", "error", start)
		return
	}

	now := time.Now()
	driver, fare, eta := assignRide(req.VehicleType, now)

	ride := models.Ride{
		CustomerName:     req.CustomerName,
		Pickup:           req.Pickup,
		Destination:      req.Destination,
		VehicleType:      req.VehicleType,
		DriverName:       driver,
		Fare:             fare,
		EstimatedArrival: eta,
		Status:           models.RideConfirmed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Rides.InsertOne(ctx, ride)
	if err != nil {
		span.RecordError(err)
		log.Printf("Failed to insert ride: %v", err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	var stored models.Ride
	if err := db.Rides.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&stored); err != nil {
		log.Printf("Failed to re-read ride %v: %v", result.InsertedID, err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	ridesBooked.WithLabelValues(string(req.VehicleType)).Inc()
	respondDataMessage(w, http.StatusCreated, stored, "Ride booked successfully")
	track("rides", "success", start)
}

// ListRides returns every ride, newest first.
func (db *DB) ListRides(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Rides.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("Error querying rides: %v", err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}
	defer cursor.Close(ctx)

	rides := make([]models.Ride, 0)
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			log.Printf("Failed to decode ride: %v", err)
			respondServerError(w)
			track("rides", "error", start)
			return
		}
		rides = append(rides, ride)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over rides: %v", err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	respondList(w, rides, len(rides))
	track("rides", "success", start)
}

// GetRide returns one ride by its store identifier.
func (db *DB) GetRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ride id")
		track("rides", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var ride models.Ride
	err = db.Rides.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(w, http.StatusNotFound, "Ride not found")
			track("rides", "error", start)
			return
		}
		log.Printf("Error fetching ride %s: %v", vars["id"], err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	respondData(w, http.StatusOK, ride)
	track("rides", "success", start)
}

// GetRidesByCustomer returns rides whose customerName contains the path
// segment, case-insensitively, newest first. No match is an empty list.
func (db *DB) GetRidesByCustomer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	filter := bson.M{"customerName": primitive.Regex{
		Pattern: regexp.QuoteMeta(vars["customerName"]),
		Options: "i",
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := db.Rides.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("Error querying rides by customer: %v", err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}
	defer cursor.Close(ctx)

	rides := make([]models.Ride, 0)
	for cursor.Next(ctx) {
		var ride models.Ride
		if err := cursor.Decode(&ride); err != nil {
			log.Printf("Failed to decode ride: %v", err)
			respondServerError(w)
			track("rides", "error", start)
			return
		}
		rides = append(rides, ride)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over rides: %v", err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	respondList(w, rides, len(rides))
	track("rides", "success", start)
}

type updateRideStatusRequest struct {
	Status models.RideStatus `json:"status"`
}

// UpdateRideStatus moves a ride to any status in the enumerated set. There
// are no ordering rules between statuses; a completed ride can go back to
// confirmed.
func (db *DB) UpdateRideStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	var req updateRideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		track("rides", "error", start)
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "status must be one of confirmed, driver_assigned, picked_up, in_progress, completed or cancelled")
		track("rides", "error", start)
		return
	}

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ride id")
		track("rides", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}}
	result, err := db.Rides.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		log.Printf("Failed to update ride %s status: %v", vars["id"], err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Ride not found")
		track("rides", "error", start)
		return
	}

	var ride models.Ride
	if err := db.Rides.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ride); err != nil {
		log.Printf("Failed to re-read ride %s: %v", vars["id"], err)
		respondServerError(w)
		track("rides", "error", start)
		return
	}

	respondDataMessage(w, http.StatusOK, ride, "Ride status updated")
	track("rides", "success", start)
}
