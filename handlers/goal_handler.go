package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"goalForgeAPI/internal/goal"
	"goalForgeAPI/middleware"
	"goalForgeAPI/services"

	"github.com/gorilla/mux"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// POST /goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req goal.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.goalService.CreateGoal(ctx, userID, &req)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// GET /goals
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if r.URL.Query().Get("detailed") == "true" {
		goals, err := h.goalService.ListGoalsDetailed(ctx, userID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch goals")
			return
		}
		respondWithJSON(w, http.StatusOK, goals)
		return
	}

	goals, err := h.goalService.ListGoals(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch goals")
		return
	}

	respondWithJSON(w, http.StatusOK, goals)
}

// GET /goals/{id}
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalID := mux.Vars(r)["id"]

	g, err := h.goalService.GetGoal(ctx, userID, goalID)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Goal not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch goal")
		return
	}

	respondWithJSON(w, http.StatusOK, g)
}

// PUT /goals/{id}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalID := mux.Vars(r)["id"]

	var req goal.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != nil {
		switch *req.Status {
		case goal.StatusActive, goal.StatusPaused, goal.StatusCompleted:
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	updated, err := h.goalService.UpdateGoal(ctx, userID, goalID, &req)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Goal not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

// DELETE /goals/{id}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	goalID := mux.Vars(r)["id"]

	if err := h.goalService.DeleteGoal(ctx, userID, goalID); err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Goal not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Goal deleted successfully",
	})
}

// POST /weekly-goals
func (h *GoalHandler) CreateWeeklyGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req goal.CreateWeeklyGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.GoalID == "" || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "goalId and title are required")
		return
	}

	created, err := h.goalService.CreateWeeklyGoal(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Goal not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create weekly goal")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// POST /tasks
func (h *GoalHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req goal.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.WeeklyGoalID == "" || req.GoalID == "" || req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "weeklyGoalId, goalId and title are required")
		return
	}

	created, err := h.goalService.CreateTask(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrWeeklyGoalNotFound) {
			respondWithError(w, http.StatusNotFound, "Weekly goal not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

// PATCH /tasks/{id}
func (h *GoalHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	taskID := mux.Vars(r)["id"]

	var req goal.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.goalService.UpdateTask(ctx, userID, taskID, &req)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondWithError(w, http.StatusNotFound, "Task not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
