package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockdesk/internal/service/listing"
	"github.com/mamadbah2/stockdesk/pkg/clients/actionapi"
	"github.com/mamadbah2/stockdesk/pkg/validator"
)

// writeError maps controller errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var verr *validator.ValidationError
	var apiErr *actionapi.APIError

	switch {
	case errors.As(err, &verr):
		fields := make([]gin.H, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			fields = append(fields, gin.H{"field": f.Field, "message": f.Message()})
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error(), "fields": fields})
	case errors.As(err, &apiErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": apiErr.Error()})
	case errors.Is(err, listing.ErrReadOnly):
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": err.Error()})
	case errors.Is(err, listing.ErrNotConfirmed):
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": err.Error()})
	case errors.Is(err, actionapi.ErrTransport), errors.Is(err, actionapi.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
