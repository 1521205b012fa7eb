package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/auth"
)

// SetupRoutes wires the public pages, the websocket feed and the
// token-gated back office onto the engine.
func SetupRoutes(
	engine *gin.Engine,
	authenticator *auth.Authenticator,
	authHandler *AuthHandler,
	publicHandler *PublicHandler,
	adminHandler *AdminHandler,
	wsHandler *WSHandler,
) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		api.GET("/members/:group", publicHandler.ListMembers)
		api.GET("/announcements", publicHandler.ListAnnouncements)
		api.GET("/events/:group/:event/leaderboard", publicHandler.EventLeaderboard)
		api.GET("/timeattack/:group/leaderboard", publicHandler.TimeAttackLeaderboard)
		api.GET("/timeattack/:group/session", publicHandler.ActiveSession)
		api.POST("/timeattack/:group/submit", publicHandler.SubmitTimeAttack)
	}

	admin := api.Group("/admin", auth.RequireAdmin(authenticator))
	{
		admin.POST("/members/:group", adminHandler.AddMember)
		admin.PUT("/members/:group/:username", adminHandler.UpdateMember)
		admin.DELETE("/members/:group/:username", adminHandler.RemoveMember)
		admin.POST("/members/:group/import", adminHandler.ImportMembers)

		admin.POST("/events/:group/:event/scores", adminHandler.SubmitScore)
		admin.DELETE("/events/:group/:event/scores", adminHandler.ResetScores)

		admin.GET("/timeattack/:group/leaderboard", adminHandler.TimeAttackLeaderboard)
		admin.DELETE("/timeattack/:group/entries", adminHandler.ResetTimeAttack)
		admin.POST("/timeattack/:group/sessions", adminHandler.CreateSession)
		admin.GET("/timeattack/:group/sessions", adminHandler.ListSessions)
		admin.DELETE("/timeattack/:group/sessions/:id", adminHandler.DeleteSession)
		admin.GET("/timeattack/:group/sessions/:id/export", adminHandler.ExportSession)

		admin.POST("/announcements", adminHandler.CreateAnnouncement)
		admin.DELETE("/announcements/:id", adminHandler.DeleteAnnouncement)
		admin.POST("/notes", adminHandler.AddNote)
		admin.GET("/notes", adminHandler.ListNotes)
		admin.DELETE("/notes/:id", adminHandler.DeleteNote)

		admin.POST("/upload", adminHandler.Upload)
	}

	engine.GET("/ws/leaderboard/:group", wsHandler.Leaderboard)
}
