package api

import (
	"net/http"

	"github.com/Vibush01/EasyFitTrack/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statusForKind maps the engine error taxonomy onto wire-level statuses.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindValidation:
		return http.StatusBadRequest
	case domain.ErrKindAuthorization:
		return http.StatusForbidden
	case domain.ErrKindNotFound:
		return http.StatusNotFound
	case domain.ErrKindConflict, domain.ErrKindInvalidState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// handleServiceError translates a service error into the standard failure
// payload {error, kind}. Untyped errors become an opaque 500.
func handleServiceError(c *gin.Context, err error) {
	if kind, ok := domain.KindOf(err); ok {
		c.AbortWithStatusJSON(statusForKind(kind), gin.H{
			"error": err.Error(),
			"kind":  kind,
		})
		return
	}
	abortWithError(c, http.StatusInternalServerError, "Internal server error.")
}

// objectIDFromBody parses an ObjectID supplied in a request body field,
// aborting with 400 on malformed input.
func objectIDFromBody(c *gin.Context, raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+field+" format.")
		return primitive.NilObjectID, err
	}
	return id, nil
}

// parseObjectIDParam reads an ObjectID path parameter, aborting with 400 on
// malformed input.
func parseObjectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
