package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fittrack/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers only parse input and map errors; the use cases live in the services.
func RegisterRoutes(app *fiber.App, db Pinger, customers service.CustomerService, workouts service.WorkoutService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/customers", RegisterCustomer(customers))
	app.Get("/customers/:id", GetCustomer(customers))
	app.Get("/customers/:id/workouts", ListCustomerWorkouts(workouts))
	app.Get("/customers/:id/workouts/exists", CustomerHasWorkouts(workouts))
	app.Get("/customers/:id/summary", CustomerWeeklySummary(workouts, time.Now))

	app.Post("/workouts", LogWorkout(workouts))
	app.Get("/workouts", ListWorkouts(workouts))
	app.Get("/workouts/:id", GetWorkout(workouts))
}
