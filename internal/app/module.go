package app

import "github.com/gin-gonic/gin"

// Module defines the contract for a self-registering business module.
// Each module owns its slice of the route table.
type Module interface {
	RegisterRoutes(r *gin.Engine)
}
