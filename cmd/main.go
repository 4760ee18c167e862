package main

import (
	// DB_TIMEZONE must load on hosts without a zoneinfo database
	_ "time/tzdata"

	"clinic-stats/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
