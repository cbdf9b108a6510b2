package handlers

import (
	"context"
	"net/http"
	"time"

	"goalForgeAPI/middleware"
	"goalForgeAPI/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GET /analytics/progress-stats
func (h *AnalyticsHandler) GetProgressStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	progressStats, err := h.analyticsService.GetProgressStats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get progress stats")
		return
	}

	respondWithJSON(w, http.StatusOK, progressStats)
}

// GET /analytics/stats
func (h *AnalyticsHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	dashboard, err := h.analyticsService.GetDashboardStats(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get dashboard stats")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboard)
}

// GET /analytics/category-performance
func (h *AnalyticsHandler) GetCategoryPerformance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	categories, err := h.analyticsService.GetCategoryPerformance(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get category performance")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// GET /analytics/productivity-patterns
func (h *AnalyticsHandler) GetProductivityPatterns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	patterns, err := h.analyticsService.GetProductivityPatterns(ctx, userID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get productivity patterns")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"patterns": patterns,
	})
}
