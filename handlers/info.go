package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const serviceName = "ridebite-server"

// Root returns service info for callers probing the API base URL.
func (db *DB) Root(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"service": serviceName,
		"message": "RideBite API - food delivery and ride booking",
		"endpoints": []string{
			"/api/restaurants",
			"/api/menu-items",
			"/api/orders",
			"/api/rides",
			"/api/raiders",
		},
	})
}

// Health reports liveness and whether the document store answers a ping.
func (db *DB) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := db.Restaurants.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, Envelope{
		Success: code == http.StatusOK,
		Data: map[string]interface{}{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
