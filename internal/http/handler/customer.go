package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"fittrack/internal/service"
)

// RegisterCustomer handles POST /customers.
func RegisterCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.RegisterCustomerInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		customer, err := svc.Register(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(customer)
	}
}

// GetCustomer handles GET /customers/:id.
func GetCustomer(svc service.CustomerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		customer, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(customer)
	}
}

// ListCustomerWorkouts handles GET /customers/:id/workouts.
func ListCustomerWorkouts(svc service.WorkoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		items, err := svc.ListByCustomer(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items, "total": len(items)})
	}
}

// CustomerHasWorkouts handles GET /customers/:id/workouts/exists.
func CustomerHasWorkouts(svc service.WorkoutService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		exists, err := svc.HasWorkouts(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"customer_id": id, "exists": exists})
	}
}

// CustomerWeeklySummary handles GET /customers/:id/summary?week=YYYY-MM-DD. The week defaults
// to the current one.
func CustomerWeeklySummary(svc service.WorkoutService, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		weekOf := now()
		if raw := c.Query("week"); raw != "" {
			t, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_WEEK", "week must be formatted as YYYY-MM-DD")
			}
			weekOf = t
		}

		summary, err := svc.WeeklySummary(c.UserContext(), id, weekOf)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(summary)
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
