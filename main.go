package main

import (
	"context"
	"time"

	"github.com/mabinihs/portal/internal/app"
)

// @title           Mabini HS Portal API
// @version         1.0
// @description     Password reset and notification relay APIs of the Mabini HS attendance portal.
// @BasePath        /
// @securityDefinitions.apikey  ServiceToken
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a service JWT.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
