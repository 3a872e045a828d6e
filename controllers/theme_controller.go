package controllers

import (
	"github.com/gin-gonic/gin"

	"slideforge/renderer"
)

// ListThemes returns the names of the built-in deck themes.
func ListThemes(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"themes":  renderer.Names(),
		"default": renderer.DefaultThemeName,
	})
}
