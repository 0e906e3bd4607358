package main

import (
	"log"

	"appshell/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application execution failed: %v", err)
	}
}
