package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"jobscreen/cmd"
)

func main() {
	// Optional .env with GEMINI_API_KEY and friends.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("loading .env: %v", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
