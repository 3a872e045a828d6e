package routes

import (
	"slideforge/controllers"

	"github.com/gin-gonic/gin"
)

func ListThemesRouteHandler(ctx *gin.Context) {
	controllers.ListThemes(ctx)
}
