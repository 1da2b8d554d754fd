package handler

import (
	"net/http"

	"vibemarket-backend/bootstrap"
	"vibemarket-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

var app *fiber.App

func init() {
	var err error
	app, err = bootstrap.New()
	if err != nil {
		panic("vibemarket: build app: " + err.Error())
	}
}

// Handler serves every rewritten request of the serverless deployment through the
// same Fiber app the long-running server uses.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()
	router.Handler(app).ServeHTTP(w, r)
}
