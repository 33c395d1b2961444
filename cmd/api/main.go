package main

import (
	"os"

	"github.com/pattadon/movie-booking-api/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
