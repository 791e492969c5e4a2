package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zachariahbioto-bot/Nutrition/logger"
	"github.com/zachariahbioto-bot/Nutrition/utils"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// respondError maps service sentinels onto status codes.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, utils.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, utils.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, utils.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, utils.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, utils.ErrParse):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrExternalService):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id > 0
}

// currentUser aborts with 401 when the auth middleware did not run.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

// dateQuery reads a YYYY-MM-DD query parameter, falling back to def.
func dateQuery(c *gin.Context, key string, def time.Time) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return utils.DateOnly(def), true
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key + " date, use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
