package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/streadway/amqp"

	"boutique/internal/config"
)

func main() {
	cfg := config.Load()

	app, err := NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Close()

	// Placeholder fulfilment worker: real consumers (notifications,
	// shipping) would run as separate processes against the same queue.
	if app.MQClient != nil {
		err := app.MQClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Order event received: %s", msg.Body)
			return nil
		})
		if err != nil {
			log.Printf("Failed to start order event consumer: %v", err)
		}
	}

	log.Printf("Starting server on %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(cfg.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
