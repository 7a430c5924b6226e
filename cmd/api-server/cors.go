package main

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// applyCORSHandler allows credentialed requests from the configured front-end origins.
func applyCORSHandler(h http.Handler, origins []string) http.Handler {
	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Content-Type", "Authorization",
		}),
		handlers.AllowCredentials(),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS", "DELETE", "PUT"}),
		handlers.AllowedOrigins(origins),
	)(h)
}
