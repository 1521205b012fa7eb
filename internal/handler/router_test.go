package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"clubhub/internal/apperrors"
	"clubhub/internal/auth"
	"clubhub/internal/config"
	"clubhub/internal/logger"
	"clubhub/internal/media"
	"clubhub/internal/models"
	"clubhub/internal/ranking"
	"clubhub/internal/service"
)

// Stub services. Only the methods the routed tests hit return data;
// everything else is empty but valid.

type stubRoster struct{}

func (stubRoster) List(ctx context.Context, group models.Group) ([]models.Member, *apperrors.AppError) {
	return []models.Member{{Username: "Bob", GameID: "1234567890", Status: models.StatusGood}}, nil
}
func (stubRoster) Add(ctx context.Context, group models.Group, member *models.Member) *apperrors.AppError {
	return nil
}
func (stubRoster) Update(ctx context.Context, group models.Group, username string, update service.MemberUpdate) (*models.Member, *apperrors.AppError) {
	return nil, apperrors.New(apperrors.CodeNotFound, "member not found")
}
func (stubRoster) Remove(ctx context.Context, group models.Group, username string) *apperrors.AppError {
	return nil
}
func (stubRoster) Import(ctx context.Context, group models.Group, members []service.ImportMember) (*service.ImportResult, *apperrors.AppError) {
	return &service.ImportResult{Imported: len(members)}, nil
}

type stubLeaderboard struct{}

func (stubLeaderboard) EventLeaderboard(ctx context.Context, scope models.Scope) ([]ranking.ScoreRow, *apperrors.AppError) {
	return []ranking.ScoreRow{{Rank: 1, Username: "Bob", Score: 500000}}, nil
}
func (stubLeaderboard) TimeAttackLeaderboard(ctx context.Context, group models.Group, adminView bool) ([]ranking.TimeRow, *apperrors.AppError) {
	return nil, nil
}

type stubSubmission struct{}

func (stubSubmission) SubmitScore(ctx context.Context, scope models.Scope, username, rawScore string) (*models.ScoreEntry, *apperrors.AppError) {
	score, err := ranking.ParseScore(rawScore)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "bad score")
	}
	return &models.ScoreEntry{Username: username, Score: score}, nil
}
func (stubSubmission) SubmitTimeAttack(ctx context.Context, group models.Group, username, rawTime string, image media.Upload) (*models.TimeAttackEntry, *apperrors.AppError) {
	millis, err := ranking.ParseLapTime(rawTime)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "bad time")
	}
	return &models.TimeAttackEntry{Username: username, TimeMillis: millis}, nil
}
func (stubSubmission) ResetScope(ctx context.Context, scope models.Scope) *apperrors.AppError {
	return nil
}
func (stubSubmission) ResetTimeAttack(ctx context.Context, group models.Group) *apperrors.AppError {
	return nil
}

type stubAnnouncements struct{}

func (stubAnnouncements) Create(ctx context.Context, title, body string, image media.Upload) (*models.Announcement, *apperrors.AppError) {
	return nil, apperrors.New(apperrors.CodeValidation, "not under test")
}
func (stubAnnouncements) List(ctx context.Context) ([]models.Announcement, *apperrors.AppError) {
	return nil, nil
}
func (stubAnnouncements) Delete(ctx context.Context, id string) *apperrors.AppError { return nil }
func (stubAnnouncements) AddNote(ctx context.Context, text string) (*models.Note, *apperrors.AppError) {
	return &models.Note{NoteID: "n1", Text: text}, nil
}
func (stubAnnouncements) ListNotes(ctx context.Context) ([]models.Note, *apperrors.AppError) {
	return nil, nil
}
func (stubAnnouncements) DeleteNote(ctx context.Context, id string) *apperrors.AppError { return nil }

type stubSessions struct{}

func (stubSessions) Create(ctx context.Context, group models.Group, session *models.Session) *apperrors.AppError {
	return nil
}
func (stubSessions) List(ctx context.Context, group models.Group) ([]models.Session, *apperrors.AppError) {
	return nil, nil
}
func (stubSessions) Delete(ctx context.Context, group models.Group, sessionID string) *apperrors.AppError {
	return nil
}
func (stubSessions) Active(ctx context.Context, group models.Group) (*models.Session, *apperrors.AppError) {
	return nil, nil
}
func (stubSessions) Export(ctx context.Context, group models.Group, sessionID string) (*service.SessionExport, *apperrors.AppError) {
	return &service.SessionExport{Filename: "TimeAttack_Monza_2026-08-01-2026-08-15.xlsx", Data: []byte{1}}, nil
}

type stubStore struct{}

func (stubStore) Put(ctx context.Context, folder string, upload media.Upload) (media.Stored, error) {
	return media.Stored{URL: "https://cdn.example.com/x", Ref: "x"}, nil
}
func (stubStore) Delete(ctx context.Context, ref string) error { return nil }

const testUploadLimit = 1 << 10

func testRouter(t *testing.T) (*gin.Engine, *auth.Authenticator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	authenticator := auth.NewAuthenticator(config.AuthConfig{
		JWTSecret:         "test-secret",
		TokenTTLMinutes:   10,
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})

	log := logger.ForEnvironment("test", "error", "")
	engine := gin.New()
	SetupRoutes(
		engine,
		authenticator,
		NewAuthHandler(authenticator, log),
		NewPublicHandler(stubRoster{}, stubLeaderboard{}, stubSubmission{}, stubAnnouncements{}, stubSessions{}, testUploadLimit, log),
		NewAdminHandler(stubRoster{}, stubLeaderboard{}, stubSubmission{}, stubAnnouncements{}, stubSessions{}, stubStore{}, testUploadLimit, log),
		NewWSHandler(nil, log),
	)
	return engine, authenticator
}

func TestPublicLeaderboardRoute(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/prime/endurance/leaderboard", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Bob") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestUnknownGroupRejected(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/members/other", nil)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown group status = %d, want 400", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	engine, authenticator := testRouter(t)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"username":"Bob","score":"100"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/events/prime/endurance/scores", body)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", w.Code)
	}

	token, err := authenticator.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	w = httptest.NewRecorder()
	body = strings.NewReader(`{"username":"Bob","score":"100"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/admin/events/prime/endurance/scores", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status with token = %d, want 201, body %s", w.Code, w.Body.String())
	}
}

func TestLoginRoute(t *testing.T) {
	engine, _ := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", w.Code)
	}
}

func submitForm(t *testing.T, imageSize int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("username", "Bob"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.WriteField("time", "01:23.456"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "lap.png")
	if err != nil {
		t.Fatalf("create file: %v", err)
	}
	if _, err := fw.Write(bytes.Repeat([]byte{0x89}, imageSize)); err != nil {
		t.Fatalf("write image: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestSubmitTimeAttackRoute(t *testing.T) {
	engine, _ := testRouter(t)

	body, contentType := submitForm(t, 64)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/timeattack/prime/submit", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Bob") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSubmitTimeAttackRejectsOversizedImage(t *testing.T) {
	engine, _ := testRouter(t)

	body, contentType := submitForm(t, testUploadLimit+1)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/timeattack/prime/submit", body)
	req.Header.Set("Content-Type", contentType)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "byte limit") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSessionExportRoute(t *testing.T) {
	engine, authenticator := testRouter(t)

	token, err := authenticator.Login("admin", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/timeattack/prime/sessions/s1/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
