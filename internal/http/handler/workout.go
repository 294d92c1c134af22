package handler

import (
	"github.com/gofiber/fiber/v2"

	"fittrack/internal/service"
)

// LogWorkout handles POST /workouts.
func LogWorkout(svc service.WorkoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.LogWorkoutInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		w, err := svc.Log(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	}
}

// ListWorkouts handles GET /workouts.
func ListWorkouts(svc service.WorkoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}

// GetWorkout handles GET /workouts/:id.
func GetWorkout(svc service.WorkoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		w, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(w)
	}
}
