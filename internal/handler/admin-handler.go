package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"clubhub/internal/apperrors"
	"clubhub/internal/logger"
	"clubhub/internal/media"
	"clubhub/internal/models"
	"clubhub/internal/service"
)

// AdminHandler serves the back office. Every route it registers sits
// behind the admin token middleware.
type AdminHandler struct {
	rosterService       service.RosterService
	leaderboardService  service.LeaderboardService
	submissionService   service.SubmissionService
	announcementService service.AnnouncementService
	sessionService      service.SessionService
	mediaStore          media.Store
	maxUploadSize       int64
	log                 *logger.Logger
}

func NewAdminHandler(
	rosterService service.RosterService,
	leaderboardService service.LeaderboardService,
	submissionService service.SubmissionService,
	announcementService service.AnnouncementService,
	sessionService service.SessionService,
	mediaStore media.Store,
	maxUploadSize int64,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		rosterService:       rosterService,
		leaderboardService:  leaderboardService,
		submissionService:   submissionService,
		announcementService: announcementService,
		sessionService:      sessionService,
		mediaStore:          mediaStore,
		maxUploadSize:       maxUploadSize,
		log:                 log,
	}
}

// Members

type addMemberRequest struct {
	Username string `json:"username" binding:"required"`
	GameID   string `json:"gameId" binding:"required"`
	Status   string `json:"status"`
	Role     string `json:"role"`
}

func (h *AdminHandler) AddMember(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid member payload"))
		return
	}

	member := &models.Member{
		Username: req.Username,
		GameID:   req.GameID,
		Status:   req.Status,
		Role:     req.Role,
	}
	if err := h.rosterService.Add(c.Request.Context(), group, member); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

type updateMemberRequest struct {
	GameID *string `json:"gameId"`
	Status *string `json:"status"`
	Role   *string `json:"role"`
}

func (h *AdminHandler) UpdateMember(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	var req updateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid member payload"))
		return
	}

	member, err := h.rosterService.Update(c.Request.Context(), group, c.Param("username"), service.MemberUpdate{
		GameID: req.GameID,
		Status: req.Status,
		Role:   req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (h *AdminHandler) RemoveMember(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	if err := h.rosterService.Remove(c.Request.Context(), group, c.Param("username")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type importMembersRequest struct {
	Members []service.ImportMember `json:"members" binding:"required"`
}

func (h *AdminHandler) ImportMembers(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	var req importMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid import payload"))
		return
	}

	result, err := h.rosterService.Import(c.Request.Context(), group, req.Members)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Scores

type submitScoreRequest struct {
	Username string `json:"username" binding:"required"`
	Score    string `json:"score" binding:"required"`
}

func (h *AdminHandler) SubmitScore(c *gin.Context) {
	scope, ok := scopeParam(c)
	if !ok {
		return
	}

	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid score payload"))
		return
	}

	entry, err := h.submissionService.SubmitScore(c.Request.Context(), scope, req.Username, req.Score)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *AdminHandler) ResetScores(c *gin.Context) {
	scope, ok := scopeParam(c)
	if !ok {
		return
	}

	if err := h.submissionService.ResetScope(c.Request.Context(), scope); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Time attack

func (h *AdminHandler) TimeAttackLeaderboard(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	rows, err := h.leaderboardService.TimeAttackLeaderboard(c.Request.Context(), group, true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}

func (h *AdminHandler) ResetTimeAttack(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	if err := h.submissionService.ResetTimeAttack(c.Request.Context(), group); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Sessions

type createSessionRequest struct {
	MapName   string `json:"mapName" binding:"required"`
	CarName   string `json:"carName"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

func (h *AdminHandler) CreateSession(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid session payload"))
		return
	}

	session := &models.Session{
		MapName:   req.MapName,
		CarName:   req.CarName,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := h.sessionService.Create(c.Request.Context(), group, session); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (h *AdminHandler) ListSessions(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.List(c.Request.Context(), group)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (h *AdminHandler) DeleteSession(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	if err := h.sessionService.Delete(c.Request.Context(), group, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ExportSession(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}

	export, err := h.sessionService.Export(c.Request.Context(), group, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.Data)
}

// Announcements and notes

func (h *AdminHandler) CreateAnnouncement(c *gin.Context) {
	title := c.PostForm("title")
	body := c.PostForm("body")

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperrors.New(apperrors.CodeValidation, "announcement image is required"))
		return
	}

	upload, uploadErr := formImage(file, h.maxUploadSize)
	if uploadErr != nil {
		respondError(c, uploadErr)
		return
	}

	announcement, createErr := h.announcementService.Create(c.Request.Context(), title, body, upload)
	if createErr != nil {
		respondError(c, createErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"announcement": announcement})
}

func (h *AdminHandler) DeleteAnnouncement(c *gin.Context) {
	if err := h.announcementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type addNoteRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *AdminHandler) AddNote(c *gin.Context) {
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Wrap(err, apperrors.CodeValidation, "invalid note payload"))
		return
	}

	note, err := h.announcementService.AddNote(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

func (h *AdminHandler) ListNotes(c *gin.Context) {
	notes, err := h.announcementService.ListNotes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *AdminHandler) DeleteNote(c *gin.Context) {
	if err := h.announcementService.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Upload stores a standalone image and returns its public URL.
func (h *AdminHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperrors.New(apperrors.CodeValidation, "image file is required"))
		return
	}

	upload, uploadErr := formImage(file, h.maxUploadSize)
	if uploadErr != nil {
		respondError(c, uploadErr)
		return
	}

	if validateErr := media.ValidateImage(upload, h.maxUploadSize); validateErr != nil {
		respondError(c, validateErr)
		return
	}

	stored, storeErr := h.mediaStore.Put(c.Request.Context(), "uploads", upload)
	if storeErr != nil {
		respondError(c, storeErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": stored.URL, "ref": stored.Ref})
}
