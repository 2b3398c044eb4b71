// Package response provides the JSON response envelope and the mapping from
// typed planning failures to HTTP status codes.
package response

import (
	"errors"
	"net/http"

	"github.com/fantastic-tour/service-routing/internal/application"
	"github.com/fantastic-tour/service-routing/internal/domain/planning"
	"github.com/gin-gonic/gin"
)

// envelope is the shape of every JSON response body.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with a plain message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{
		Success: false,
		Error:   &errorBody{Kind: string(planning.KindInvalidInput), Message: message},
	})
}

// Error maps a planning failure to its HTTP status. Same-location is not an
// error from the caller's point of view, so it goes out as a 200 with the
// explanation in the error body.
func Error(c *gin.Context, err error) {
	var planErr *application.PlanError
	if errors.As(err, &planErr) {
		body := &errorBody{
			Kind:    string(planErr.Kind),
			Stage:   string(planErr.Stage),
			Message: planErr.Message,
		}
		if planErr.Informational() {
			c.JSON(http.StatusOK, envelope{Success: false, Error: body})
			return
		}
		c.JSON(statusFor(planErr.Kind), envelope{Success: false, Error: body})
		return
	}

	var pe *planning.Error
	if errors.As(err, &pe) {
		c.JSON(statusFor(pe.Kind), envelope{
			Success: false,
			Error:   &errorBody{Kind: string(pe.Kind), Message: pe.Message},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, envelope{
		Success: false,
		Error:   &errorBody{Kind: "internal", Message: "internal server error"},
	})
}

func statusFor(kind planning.ErrorKind) int {
	switch kind {
	case planning.KindEmpty, planning.KindTooShort, planning.KindTooLong,
		planning.KindIllegalCharacter, planning.KindUnsupportedMode,
		planning.KindOutOfRange, planning.KindInvalidInput:
		return http.StatusBadRequest
	case planning.KindNotFound, planning.KindNoRouteFound:
		return http.StatusNotFound
	case planning.KindRateLimited:
		return http.StatusTooManyRequests
	case planning.KindTimeout:
		return http.StatusGatewayTimeout
	case planning.KindConnectionError, planning.KindUpstreamUnavailable,
		planning.KindUpstreamError, planning.KindMalformedResponse,
		planning.KindAuthError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
