package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/itsmahmudul/ridebite-server/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListRestaurants returns every restaurant, unfiltered and unpaginated.
func (db *DB) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cursor, err := db.Restaurants.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Error querying restaurants: %v", err)
		respondServerError(w)
		track("restaurants", "error", start)
		return
	}
	defer cursor.Close(ctx)

	restaurants := make([]models.Restaurant, 0)
	for cursor.Next(ctx) {
		var restaurant models.Restaurant
		if err := cursor.Decode(&restaurant); err != nil {
			log.Printf("Failed to decode restaurant: %v", err)
			respondServerError(w)
			track("restaurants", "error", start)
			return
		}
		restaurants = append(restaurants, restaurant)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over restaurants: %v", err)
		respondServerError(w)
		track("restaurants", "error", start)
		return
	}

	respondList(w, restaurants, len(restaurants))
	track("restaurants", "success", start)
}

// GetRestaurant returns a single restaurant by its store identifier.
func (db *DB) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid restaurant id")
		track("restaurants", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var restaurant models.Restaurant
	err = db.Restaurants.FindOne(ctx, bson.M{"_id": objectID}).Decode(&restaurant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(w, http.StatusNotFound, "Restaurant not found")
			track("restaurants", "error", start)
			return
		}
		log.Printf("Error fetching restaurant %s: %v", vars["id"], err)
		respondServerError(w)
		track("restaurants", "error", start)
		return
	}

	respondData(w, http.StatusOK, restaurant)
	track("restaurants", "success", start)
}

// GetRestaurantMenu returns the menu items referencing the restaurant.
// An empty menu is a normal result, not an error.
func (db *DB) GetRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid restaurant id")
		track("menu", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cursor, err := db.MenuItems.Find(ctx, bson.M{"restaurantId": objectID})
	if err != nil {
		log.Printf("Error querying menu items: %v", err)
		respondServerError(w)
		track("menu", "error", start)
		return
	}
	defer cursor.Close(ctx)

	items := make([]models.MenuItem, 0)
	for cursor.Next(ctx) {
		var item models.MenuItem
		if err := cursor.Decode(&item); err != nil {
			log.Printf("Failed to decode menu item: %v", err)
			respondServerError(w)
			track("menu", "error", start)
			return
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over menu items: %v", err)
		respondServerError(w)
		track("menu", "error", start)
		return
	}

	respondList(w, items, len(items))
	track("menu", "success", start)
}

// DeleteRestaurant removes the restaurant and then, best effort, every menu
// item referencing it. The cascade is a second independent operation: a
// failure there is logged but never surfaced to the caller.
func (db *DB) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid restaurant id")
		track("restaurants", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Restaurants.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		log.Printf("Error deleting restaurant %s: %v", vars["id"], err)
		respondServerError(w)
		track("restaurants", "error", start)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Restaurant not found")
		track("restaurants", "error", start)
		return
	}

	if _, err := db.MenuItems.DeleteMany(ctx, bson.M{"restaurantId": objectID}); err != nil {
		log.Printf("Cascade delete of menu items for restaurant %s failed: %v", vars["id"], err)
	}

	respondMessage(w, http.StatusOK, "Restaurant and its menu items deleted")
	track("restaurants", "success", start)
}

// ListMenuItems returns every menu item across all restaurants.
func (db *DB) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	cursor, err := db.MenuItems.Find(ctx, bson.M{})
	if err != nil {
		log.Printf("Error querying menu items: %v", err)
		respondServerError(w)
		track("menu", "error", start)
		return
	}
	defer cursor.Close(ctx)

	items := make([]models.MenuItem, 0)
	for cursor.Next(ctx) {
		var item models.MenuItem
		if err := cursor.Decode(&item); err != nil {
			log.Printf("Failed to decode menu item: %v", err)
			respondServerError(w)
			track("menu", "error", start)
			return
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		log.Printf("Error while iterating over menu items: %v", err)
		respondServerError(w)
		track("menu", "error", start)
		return
	}

	respondList(w, items, len(items))
	track("menu", "success", start)
}

// DeleteMenuItem deletes one menu item by id.
func (db *DB) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	objectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid menu item id")
		track("menu", "error", start)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.MenuItems.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		log.Printf("Error deleting menu item %s: %v", vars["id"], err)
		respondServerError(w)
		track("menu", "error", start)
		return
	}
	if result.DeletedCount == 0 {
		respondError(w, http.StatusNotFound, "Menu item not found")
		track("menu", "error", start)
		return
	}

	respondMessage(w, http.StatusOK, "Menu item deleted")
	track("menu", "success", start)
}
