// Package router wires the chatbot HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"

	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/handler"
	"github.com/kaannerenn/nba-fantasy-chatbot/internal/chatbot/metrics"
)

// Register registers all chatbot routes on the engine.
func Register(engine *gin.Engine, chatHandler *handler.ChatHandler) {
	logger.Info("Registering chatbot routes...")

	engine.Use(RequestID(), RequestLogger(), Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/metrics", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8",
			[]byte(metrics.GetChatMetrics().Export("chatbot", "")))
	})

	v1 := engine.Group("/v1")
	{
		chat := v1.Group("/chat")
		{
			chat.POST("/query", chatHandler.Query)
			chat.POST("/index", chatHandler.Index)
			chat.GET("/stats", chatHandler.Stats)

			chat.POST("/evaluate", chatHandler.Evaluate)
			chat.POST("/query-evaluate", chatHandler.QueryAndEvaluate)
			chat.POST("/evaluate-suite", chatHandler.EvaluateSuite)
		}
	}

	logger.Info("HTTP routes registered")
}
