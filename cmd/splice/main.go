package main

import (
	"log"

	"github.com/MrSnakeDoc/splice/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ splice failed to start: %v", err)
	}
}
