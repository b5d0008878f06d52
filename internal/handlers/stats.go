package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"upitrack/internal/repositories"
	"upitrack/internal/utils"
)

type StatsHandler struct {
	repo repositories.Repository
}

func NewStatsHandler(repo repositories.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// GetUserStats returns the cached rollup, recomputing it from primary data
// when no row exists yet.
func (h *StatsHandler) GetUserStats(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return utils.NotFound(c, "stats not found")
	}

	stats, err := h.repo.GetStats(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c, "stats not found")
		}
		log.Printf("stats fetch for user %d failed: %v", userID, err)
		return utils.InternalError(c, "failed to fetch stats")
	}
	return utils.Success(c, stats)
}
