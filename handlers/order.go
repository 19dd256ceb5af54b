package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/itsmahmudul/ridebite-server/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
)

// orderDeliveryWindow is added to the placement time to produce the
// estimated delivery time.
const orderDeliveryWindow = 45 * time.Minute

// unknownRestaurantName stands in when an order references a restaurant
// that no longer exists.
const unknownRestaurantName = "Unknown Restaurant"

// newOrderID generates the customer-facing order id.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("RB%d", now.UnixMilli())
}

type placeOrderRequest struct {
	RestaurantID    string             `json:"restaurantId"`
	Items           []models.OrderItem `json:"items"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	DeliveryAddress string             `json:"deliveryAddress"`
	TotalAmount     interface{}        `json:"totalAmount"`
}

// toFloat coerces the loosely typed totalAmount field to a float64.
// Clients send it as a number or a numeric string.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// PlaceOrder creates a new food order. There is no idempotency key: a
// retried request creates a second order.
func (db *DB) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	_, span := otel.Tracer("order-service").Start(r.Context(), "PlaceOrder")
	defer span.End()

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		track("orders", "error", start)
		return
	}

	if req.RestaurantID == "" || len(req.Items) == 0 || req.CustomerName == "" || req.TotalAmount == nil {
		respondError(w, http.StatusBadRequest, "restaurantId, items, customerName and totalAmount are required")
		track("orders", "error", start)
		return
	}

	totalAmount, ok := toFloat(req.TotalAmount)
	if !ok {
		respondError(w, http.StatusBadRequest, "totalAmount must be a number")
		track("orders", "error", start)
		return
	}

	now := time.Now()
	order := models.Order{
		OrderID:           newOrderID(now),
		RestaurantID:      req.RestaurantID,
		Items:             req.Items,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		DeliveryAddress:   req.DeliveryAddress,
		TotalAmount:       totalAmount,
		Status:            "confirmed",
		CreatedAt:         now,
		EstimatedDelivery: now.Add(orderDeliveryWindow),
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	result, err := db.Orders.InsertOne(ctx, order)
	if err != nil {
		span.RecordError(err)
		log.Printf("Failed to insert order: %v", err)
		respondServerError(w)
		track("orders", "error", start)
		return
	}

	ordersPlaced.Inc()
	respondDataMessage(w, http.StatusCreated, map[string]interface{}{
		"orderId":           order.OrderID,
		"id":                result.InsertedID,
		"estimatedDelivery": order.EstimatedDelivery,
		"totalAmount":       order.TotalAmount,
	}, "Order placed successfully")
	track("orders", "success", start)
}

type orderResponse struct {
	models.Order   `bson:",inline"`
	RestaurantName string `json:"restaurantName"`
}

// GetOrder looks an order up by its customer-facing orderId and
// denormalizes the referenced restaurant's name into the response. A
// missing restaurant gets a placeholder name, not an error.
func (db *DB) GetOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	vars := mux.Vars(r)

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	var order models.Order
	err := db.Orders.FindOne(ctx, bson.M{"orderId": vars["orderId"]}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respondError(w, http.StatusNotFound, "Order not found")
			track("orders", "error", start)
			return
		}
		log.Printf("Error fetching order %s: %v", vars["orderId"], err)
		respondServerError(w)
		track("orders", "error", start)
		return
	}

	restaurantName := unknownRestaurantName
	if restaurantID, err := primitive.ObjectIDFromHex(order.RestaurantID); err == nil {
		var restaurant models.Restaurant
		if err := db.Restaurants.FindOne(ctx, bson.M{"_id": restaurantID}).Decode(&restaurant); err == nil {
			restaurantName = restaurant.Name
		}
	}

	respondData(w, http.StatusOK, orderResponse{Order: order, RestaurantName: restaurantName})
	track("orders", "success", start)
}
