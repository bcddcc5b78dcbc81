package service

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(server *Server) *gin.Engine {
	registerTagNames()

	routes := gin.New()
	routes.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(server.Logger),
		server.Metrics.Middleware(),
	)

	routes.GET("/health", Health)
	routes.GET("/metrics", server.Metrics.Handler())
	routes.GET("/activity/:username", server.Activity)

	cachedRoutes := routes.Group("/")
	{
		cachedRoutes.Use(server.CacheUserRequest)

		cachedRoutes.GET("/books", server.ListBooks)
		cachedRoutes.GET("/books/search", server.SearchBooks)
		cachedRoutes.GET("/books/:id", server.GetBookById)
		cachedRoutes.POST("/books", server.CreateBook)
		cachedRoutes.PUT("/books/:id", server.UpdateBook)
		cachedRoutes.GET("/store", server.Store)
	}

	return routes
}
