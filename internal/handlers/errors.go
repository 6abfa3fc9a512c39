package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/devnotex/devnotex/internal/apperr"
)

// respondError translates a service error into a status code + message body.
// Internal faults are logged server-side and masked in the response.
func respondError(ctx *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.Internal {
		log.Printf("Internal error: %v", err)
	}

	ctx.JSON(apperr.StatusCode(err), gin.H{"error": apperr.Message(err)})
}
