package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-buffer-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-buffer-service/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBufferNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrBreachNotFound),
		errors.Is(err, domain.ErrQualificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidScope),
		errors.Is(err, domain.ErrInvalidFactor),
		errors.Is(err, domain.ErrInvalidTrigger),
		errors.Is(err, domain.ErrInvalidOrder):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", "path", c.FullPath(), "error", err.Error())
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
}
