package devserver

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"glimpse/internal/api"
	"glimpse/internal/session"
)

func SetupRouter(store *Store, sessions session.Manager, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), cors.Default())
	h := NewHandler(store, sessions, logger)

	// Health
	r.GET("/health", h.Health)

	// Session
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", h.Me)

	// Feed
	r.GET("/feed", h.Feed)

	// Post interactions
	r.POST("/posts/:post_id/like", h.Toggle(api.KindLike))
	r.POST("/posts/:post_id/share", h.Toggle(api.KindShare))
	r.POST("/posts/:post_id/save", h.Toggle(api.KindSave))

	// Comments
	r.POST("/posts/:post_id/comments", h.CreateComment)
	r.DELETE("/posts/:post_id/comments/:comment_id", h.DeleteComment)

	// Posts
	r.DELETE("/posts/:post_id", h.DeletePost)

	return r
}
