// Seeds the initial admin account. Safe to run repeatedly: if the email is
// already taken nothing is written.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/emsdev/ems_backend/config"
	"github.com/emsdev/ems_backend/models"
	"github.com/emsdev/ems_backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	client := config.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@gmail.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	collection := config.GetCollection(client, "users")

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Fatalf("Failed to check for existing admin: %v", err)
	}
	if count > 0 {
		log.Printf("Admin user %s already exists, nothing to do", email)
		return
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:      "Admin",
		Email:     email,
		Password:  hashedPassword,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}

	if _, err := collection.InsertOne(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	log.Printf("Admin user %s created", email)
}
