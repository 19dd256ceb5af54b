package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/itsmahmudul/ridebite-server/config"
	"github.com/itsmahmudul/ridebite-server/handlers"
	"github.com/itsmahmudul/ridebite-server/middleware"
	"github.com/itsmahmudul/ridebite-server/middleware/logkafka"
	"github.com/itsmahmudul/ridebite-server/telem"
	"github.com/itsmahmudul/ridebite-server/utils"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	// Connection failure at startup is fatal, no retry.
	db, err := utils.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer utils.Disconnect(context.TODO())

	handlers.Init()

	shutdownMetrics, err := telem.InitMetrics("ridebite-server", cfg.MetricsAddr)
	if err != nil {
		log.Fatalf("Failed to init metrics: %v", err)
	}
	defer shutdownMetrics(context.Background())

	shutdownTracing, err := telem.InitTracing("ridebite-server", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	if len(cfg.KafkaBrokers) > 0 {
		logkafka.InitKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer logkafka.CloseKafkaWriter()
		if cfg.LogPusher {
			go utils.RunLogPusher(cfg.KafkaBrokers, cfg.KafkaTopic)
		}
	}

	h := handlers.NewDB(db)

	mainRouter := mux.NewRouter()
	mainRouter.Use(middleware.Recover)
	mainRouter.Use(logkafka.LoggingMiddleware)

	mainRouter.HandleFunc("/", h.Root).Methods("GET")
	mainRouter.HandleFunc("/health", h.Health).Methods("GET")

	api := mainRouter.PathPrefix("/api").Subrouter()

	api.HandleFunc("/restaurants", h.ListRestaurants).Methods("GET")
	api.HandleFunc("/restaurants/{id}", h.GetRestaurant).Methods("GET")
	api.HandleFunc("/restaurants/{id}/menu", h.GetRestaurantMenu).Methods("GET")
	api.HandleFunc("/restaurants/{id}", h.DeleteRestaurant).Methods("DELETE")

	api.HandleFunc("/menu-items", h.ListMenuItems).Methods("GET")
	api.HandleFunc("/menu-items/{id}", h.DeleteMenuItem).Methods("DELETE")

	api.HandleFunc("/orders", h.PlaceOrder).Methods("POST")
	api.HandleFunc("/orders/{orderId}", h.GetOrder).Methods("GET")

	api.HandleFunc("/rides", h.BookRide).Methods("POST")
	api.HandleFunc("/rides", h.ListRides).Methods("GET")
	api.HandleFunc("/rides/customer/{customerName}", h.GetRidesByCustomer).Methods("GET")
	api.HandleFunc("/rides/{id}", h.GetRide).Methods("GET")
	api.HandleFunc("/rides/{id}/status", h.UpdateRideStatus).Methods("PATCH")

	api.HandleFunc("/raiders", h.ListRaiders).Methods("GET")
	api.HandleFunc("/raiders", h.AddRaider).Methods("POST")
	api.HandleFunc("/raiders/{id}", h.UpdateRaider).Methods("PUT")
	api.HandleFunc("/raiders/{id}", h.DeleteRaider).Methods("DELETE")

	srv := &http.Server{
		Handler:      mainRouter,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("ridebite-server listening on %s", cfg.Addr)
	log.Fatal(srv.ListenAndServe())
}
