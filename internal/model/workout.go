package model

import "time"

// Workout is one logged training session. It references its owner by CustomerID only;
// callers needing the customer record fetch it from the customer store.
type Workout struct {
	Entity
	CustomerID      int64      `json:"customer_id"`
	WorkoutType     *string    `json:"workout_type,omitempty"`
	Calories        *int       `json:"calories,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	WorkoutDate     *time.Time `json:"workout_date,omitempty"`
}

// WorkoutSummary aggregates a customer's workouts dated in [From, To).
type WorkoutSummary struct {
	CustomerID         int64     `json:"customer_id"`
	From               time.Time `json:"from"`
	To                 time.Time `json:"to"`
	Count              int       `json:"count"`
	TotalCalories      int       `json:"total_calories"`
	AvgCalories        float64   `json:"avg_calories"`
	AvgDurationMinutes float64   `json:"avg_duration_minutes"`
}
