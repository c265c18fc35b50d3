package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/biblioteca/internal/auth"
	"github.com/mrlokans/biblioteca/internal/database"
	"github.com/mrlokans/biblioteca/internal/entities"
	"github.com/mrlokans/biblioteca/internal/logging"
	"github.com/mrlokans/biblioteca/internal/validation"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// IDResponse is returned by endpoints that create a row.
type IDResponse struct {
	ID uint `json:"id"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "validation"})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logging.Ctx(c.Request.Context()).Error().Err(err).Str("context", context).Msg("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondStoreError maps the error kinds of the stores to a status code:
// validation 400, bad credentials 401, not found or dangling references 404,
// conflicts 409.
// Anything else is logged and reported as 500.
func respondStoreError(c *gin.Context, err error, context string) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "validation", Details: verr.Fields})
	case errors.Is(err, entities.ErrValidation):
		respondBadRequest(c, err.Error())
	case errors.Is(err, auth.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials", Code: "unauthorized"})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, entities.ErrAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "already_exists"})
	case errors.Is(err, entities.ErrUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "unavailable"})
	case database.IsForeignKeyViolation(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "referenced user or material not found", Code: "not_found"})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an unsigned integer ID from query parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		respondBadRequest(c, paramName+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body into req and runs the validator on it.
// Responds with 400 and returns false on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	if err := validation.ValidateStruct(req); err != nil {
		respondStoreError(c, err, "validate request")
		return false
	}
	return true
}
