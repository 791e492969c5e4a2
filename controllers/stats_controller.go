package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/services"
)

const maxRecomputeDays = 31

type StatsController struct {
	Dashboard *services.DashboardService
	Stats     *services.DailyStatsService
}

func NewStatsController(d *services.DashboardService, s *services.DailyStatsService) *StatsController {
	return &StatsController{Dashboard: d, Stats: s}
}

// GET /dashboard
func (sc *StatsController) Today(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	out, err := sc.Dashboard.Today(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /stats/history
func (sc *StatsController) History(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	rows, err := sc.Stats.History(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// POST /stats/recompute?date=YYYY-MM-DD&days=1
func (sc *StatsController) Recompute(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", time.Now())
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "1"))
	if err != nil || days < 1 || days > maxRecomputeDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be between 1 and 31"})
		return
	}

	rows, err := sc.Stats.RecomputeRange(c.Request.Context(), uid, date, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": rows})
}

// GET /stats/summary?from=&to= defaults to the current month.
func (sc *StatsController) Summary(c *gin.Context) {
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from, ok := dateQuery(c, "from", first)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", first.AddDate(0, 1, -1))
	if !ok {
		return
	}

	out, err := sc.Dashboard.Summary(c.Request.Context(), uid, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
