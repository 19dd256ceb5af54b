// Package handlers provides the HTTP handler functions for the RideBite
// API: restaurants, menu items, food orders, rides and raiders (delivery
// riders). Every handler is a method on DB, which carries the MongoDB
// collection references injected at startup. Handlers translate a request
// into one or two store operations and reply with the uniform JSON
// envelope.
package handlers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

// DB holds the collection handles the resource handlers operate on.
type DB struct {
	Restaurants *mongo.Collection
	MenuItems   *mongo.Collection
	Orders      *mongo.Collection
	Rides       *mongo.Collection
	Raiders     *mongo.Collection
}

// NewDB wires the resource handlers to the five RideBite collections.
func NewDB(db *mongo.Database) *DB {
	return &DB{
		Restaurants: db.Collection("restaurants"),
		MenuItems:   db.Collection("menu_items"),
		Orders:      db.Collection("orders"),
		Rides:       db.Collection("rides"),
		Raiders:     db.Collection("raiders"),
	}
}

const dbTimeout = 5 * time.Second

// Prometheus metrics
var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridebite_requests_total",
			Help: "Total number of API requests by resource and outcome",
		},
		[]string{"resource", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ridebite_request_duration_seconds",
			Help:    "Histogram of request durations by resource",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)

	ridesBooked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridebite_rides_booked_total",
			Help: "Total number of rides booked by vehicle type",
		},
		[]string{"vehicle_type"},
	)

	ordersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ridebite_orders_placed_total",
		Help: "Total number of food orders placed",
	})
)

// Init registers the handler metrics with Prometheus.
func Init() {
	prometheus.MustRegister(requestCount)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(ridesBooked)
	prometheus.MustRegister(ordersPlaced)
}

// track records the outcome counter and duration histogram for one request.
func track(resource, status string, start time.Time) {
	requestCount.WithLabelValues(resource, status).Inc()
	requestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())
}
