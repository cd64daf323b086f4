package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/haanhpham/autopress/pkg/auth"
)

func main() {
	fmt.Println("hashing admin password for config...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is not set")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	fmt.Printf("set ADMIN_PASSWORD_HASH to:\n%s\n", hash)
}
