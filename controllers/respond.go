package controllers

import (
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
)

// respondPipelineError writes a pipeline failure to the client. Unknown
// failures get a generic message; the detail lives in the server logs.
func respondPipelineError(c *gin.Context, perr *services.PaymentError) {
	status := services.StatusForKind(perr.Kind)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": perr.Message}
	if len(perr.Details) > 0 {
		body["details"] = perr.Details
	}
	c.JSON(status, body)
}
