package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/service"
)

// PublicHandler serves the read-only club pages and the time attack
// submission endpoint.
type PublicHandler struct {
	rosterService       service.RosterService
	leaderboardService  service.LeaderboardService
	submissionService   service.SubmissionService
	announcementService service.AnnouncementService
	sessionService      service.SessionService
	maxUploadSize       int64
	log                 *logger.Logger
}

func NewPublicHandler(
	rosterService service.RosterService,
	leaderboardService service.LeaderboardService,
	submissionService service.SubmissionService,
	announcementService service.AnnouncementService,
	sessionService service.SessionService,
	maxUploadSize int64,
	log *logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		rosterService:       rosterService,
		leaderboardService:  leaderboardService,
		submissionService:   submissionService,
		announcementService: announcementService,
		sessionService:      sessionService,
		maxUploadSize:       maxUploadSize,
		log:                 log,
	}
}

func (h *PublicHandler) ListMembers(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	members, err := h.rosterService.List(c.Request.Context(), group)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *PublicHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.announcementService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

func (h *PublicHandler) EventLeaderboard(c *gin.Context) {
	scope, ok := scopeParam(c)
	if !ok {
		return
	}

	rows, err := h.leaderboardService.EventLeaderboard(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func (h *PublicHandler) TimeAttackLeaderboard(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	rows, err := h.leaderboardService.TimeAttackLeaderboard(c.Request.Context(), group, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func (h *PublicHandler) ActiveSession(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	session, err := h.sessionService.Active(c.Request.Context(), group)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SubmitTimeAttack accepts a multipart form with username, time and a
// proof image.
func (h *PublicHandler) SubmitTimeAttack(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	username := c.PostForm("username")
	lapTime := c.PostForm("time")

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperrors.New(apperrors.CodeValidation, "proof image is required"))
		return
	}

	upload, uploadErr := formImage(file, h.maxUploadSize)
	if uploadErr != nil {
		respondError(c, uploadErr)
		return
	}

	entry, submitErr := h.submissionService.SubmitTimeAttack(c.Request.Context(), group, username, lapTime, upload)
	if submitErr != nil {
		respondError(c, submitErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}
