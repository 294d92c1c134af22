package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fittrack/internal/errs"
	"fittrack/internal/http/middleware"
	"fittrack/internal/model"
	"fittrack/internal/service"
	serviceMocks "fittrack/internal/service/mocks"
	"fittrack/internal/sqlerr"
	"fittrack/internal/validation"
)

func decodeError(t *testing.T, body io.Reader) errorPayload {
	t.Helper()
	var res errorPayload
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterCustomer(t *testing.T) {
	mockSvc := new(serviceMocks.MockCustomerService)
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Post("/customers", RegisterCustomer(mockSvc))

	const body = `{"name":"Jane Doe","email":"jane.doe@example.com","password":"securePass","age":28,"gender":"FEMALE"}`

	t.Run("success hides password hash", func(t *testing.T) {
		age := 28
		created := &model.Customer{
			Entity:   model.Entity{ID: 1},
			Name:     "Jane Doe",
			Email:    "jane.doe@example.com",
			Password: "$2a$12$hash",
			Age:      &age,
			Gender:   model.GenderFemale,
		}
		mockSvc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterCustomerInput) bool {
			return in.Email == "jane.doe@example.com" && in.Password == "securePass" && *in.Age == 28
		})).Return(created, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/customers", body))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		var result map[string]any
		require.NoError(t, json.Unmarshal(raw, &result))
		assert.Equal(t, float64(1), result["id"])
		assert.Equal(t, "FEMALE", result["gender"])
		assert.NotContains(t, result, "password")
		assert.NotContains(t, string(raw), "$2a$")
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/customers", `{"name":`))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		verr := validation.Struct(struct {
			Email string `json:"email" validate:"required,email"`
		}{Email: "nope"})
		mockSvc.On("Register", mock.Anything, mock.Anything).
			Return(nil, errors.Join(service.ErrInvalidInput, verr)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/customers", body))

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		res := decodeError(t, resp.Body)
		assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
		require.Len(t, res.Error.Details, 1)
		assert.Equal(t, "email", res.Error.Details[0].Field)
		assert.NotEmpty(t, res.RequestID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockSvc.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/customers", body))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "EMAIL_TAKEN", decodeError(t, resp.Body).Error.Code)
	})
}

func TestGetCustomer(t *testing.T) {
	mockSvc := new(serviceMocks.MockCustomerService)
	app := fiber.New()
	app.Get("/customers/:id", GetCustomer(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(1)).
			Return(&model.Customer{Entity: model.Entity{ID: 1}, Name: "Jane Doe"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Customer
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Jane Doe", result.Name)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99999)).Return(nil, errs.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/99999", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("database down", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(2)).
			Return(nil, &sqlerr.Error{Code: sqlerr.ConnectionFailure, Message: "connection refused"}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/2", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp.Body).Error.Code)
	})
}

func TestLogWorkout(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkoutService)
	app := fiber.New()
	app.Post("/workouts", LogWorkout(mockSvc))

	const body = `{"customer_id":1,"workout_type":"Cycling","calories":500,"duration_minutes":60,"workout_date":"2024-03-12T07:00:00Z"}`

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Log", mock.Anything, mock.MatchedBy(func(in service.LogWorkoutInput) bool {
			return in.CustomerID == 1 && *in.WorkoutType == "Cycling" &&
				in.WorkoutDate.Equal(time.Date(2024, 3, 12, 7, 0, 0, 0, time.UTC))
		})).Return(&model.Workout{Entity: model.Entity{ID: 10}, CustomerID: 1}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/workouts", body))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.Workout
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, int64(10), result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown customer", func(t *testing.T) {
		mockSvc.On("Log", mock.Anything, mock.Anything).
			Return(nil, &sqlerr.Error{Code: sqlerr.ForeignKeyViolation, TableName: "workout"}).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/workouts", body))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONSTRAINT_VIOLATION", decodeError(t, resp.Body).Error.Code)
	})
}

func TestListWorkouts(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkoutService)
	app := fiber.New()
	app.Get("/workouts", ListWorkouts(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).
			Return([]model.Workout{{Entity: model.Entity{ID: 1}}, {Entity: model.Entity{ID: 2}}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workouts", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result struct {
			Data  []model.Workout `json:"data"`
			Total int             `json:"total"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Data, 2)
		assert.Equal(t, 2, result.Total)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workouts", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetWorkout(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkoutService)
	app := fiber.New()
	app.Get("/workouts/:id", GetWorkout(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(10)).Return(&model.Workout{Entity: model.Entity{ID: 10}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workouts/10", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("zero id is invalid", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workouts/0", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99999)).Return(nil, errs.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workouts/99999", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestCustomerWorkoutRoutes(t *testing.T) {
	mockSvc := new(serviceMocks.MockWorkoutService)
	fixedNow := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	app := fiber.New()
	app.Get("/customers/:id/workouts", ListCustomerWorkouts(mockSvc))
	app.Get("/customers/:id/workouts/exists", CustomerHasWorkouts(mockSvc))
	app.Get("/customers/:id/summary", CustomerWeeklySummary(mockSvc, func() time.Time { return fixedNow }))

	t.Run("list by customer", func(t *testing.T) {
		mockSvc.On("ListByCustomer", mock.Anything, int64(1)).Return([]model.Workout{{CustomerID: 1}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1/workouts", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("list for unknown customer", func(t *testing.T) {
		mockSvc.On("ListByCustomer", mock.Anything, int64(5)).Return(nil, errs.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/5/workouts", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("exists", func(t *testing.T) {
		mockSvc.On("HasWorkouts", mock.Anything, int64(1)).Return(true, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1/workouts/exists", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["exists"])
		assert.Equal(t, float64(1), result["customer_id"])
	})

	t.Run("summary for explicit week", func(t *testing.T) {
		week := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
		mockSvc.On("WeeklySummary", mock.Anything, int64(1), week).
			Return(&model.WorkoutSummary{CustomerID: 1, Count: 2, TotalCalories: 800}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1/summary?week=2024-03-04", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.WorkoutSummary
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 800, result.TotalCalories)
	})

	t.Run("summary defaults to current week", func(t *testing.T) {
		mockSvc.On("WeeklySummary", mock.Anything, int64(1), fixedNow).
			Return(&model.WorkoutSummary{CustomerID: 1}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1/summary", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("summary with bad week", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/customers/1/summary?week=last-monday", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_WEEK", decodeError(t, resp.Body).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	t.Run("unknown route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp.Body).Error.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp.Body).Error.Code)
	})
}
