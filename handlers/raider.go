package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Raider documents are schemaless by design: callers may submit any fields
// and the server only guarantees the defaulted ones below, so these
// handlers work on bson.M instead of a struct.

// raiderDefaults returns the fields stamped onto every new raider.
func raiderDefaults(now time.Time) bson.M {
	return bson.M{
		"status":          "available",
		"isActive":        true,
		"totalDeliveries": 0,
		"rating":          0,
		"joinedDate":      now,
		"lastActive":      now,
	}
}

// ListRaiders returns every raider, unfiltered and unpaginated.
func (db *DB) ListRaiders(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cursor, err := db.Raiders.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Error querying raiders: %v", err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}
	defer cursor.Close(ctx)

	raiders := make([]bson.M, 0)
	for cursor.Next(ctx) {
		var raider bson.M
		if err := cursor.Decode(&raider); err != nil {
			log.Printf("Failed to decode raider: %v", err)
			respondServerError(w)
			track("raiders", "error", start)
			return
		}
		raiders = append(raiders, raider)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over raiders: %v", err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}

	respondList(w, raiders, len(raiders))
	track("raiders", "success", start)
}

// AddRaider inserts the submitted fields with the server defaults merged
// on top and returns the stored document with its assigned identifier.
func (db *DB) AddRaider(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raider := bson.M{}
	if err := json.NewDecoder(r.Body).Decode(&raider); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		track("raiders", "error", start)
		return
	}
	delete(raider, "_id")

	for field, value := range raiderDefaults(time.Now()) {
		raider[field] = value
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Raiders.InsertOne(ctx, raider)
	if err != nil {
		log.Printf("Failed to insert raider: %v", err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}

	raider["_id"] = result.InsertedID
	respondDataMessage(w, http.StatusCreated, raider, "Raider added successfully")
	track("raiders", "success", start)
}

// UpdateRaider partially merges the submitted fields into the raider and
// refreshes its lastActive timestamp.
func (db *DB) UpdateRaider(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid raider id")
		track("raiders", "error", start)
		return
	}

	fields := bson.M{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		track("raiders", "error", start)
		return
	}
	delete(fields, "_id")
	fields["lastActive"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Raiders.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": fields})
	if err != nil {
		log.Printf("Failed to update raider %s: %v", vars["id"], err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}
	if result.MatchedCount == 0 {
		respondError(w, http.StatusNotFound, "Raider not found")
		track("raiders", "error", start)
		return
	}

	var raider bson.M
	if err := db.Raiders.FindOne(ctx, bson.M{"_id": objectID}).Decode(&raider); err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(w, http.StatusNotFound, "Raider not found")
			track("raiders", "error", start)
			return
		}
		log.Printf("Failed to re-read raider %s: %v", vars["id"], err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}

	respondDataMessage(w, http.StatusOK, raider, "Raider updated successfully")
	track("raiders", "success", start)
}

// DeleteRaider deletes one raider by id.
func (db *DB) DeleteRaider(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid raider id")
		track("raiders", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Raiders.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		log.Printf("Failed to delete raider %s: %v", vars["id"], err)
		respondServerError(w)
		track("raiders", "error", start)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Raider not found")
		track("raiders", "error", start)
		return
	}

	respondMessage(w, http.StatusOK, "Raider deleted")
	track("raiders", "success", start)
}
