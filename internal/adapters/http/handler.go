package httpadapter

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PabloGalante/farum-calm/internal/app/greeting"
	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/catalog"
	"github.com/PabloGalante/farum-calm/internal/domain"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

// historyDays is the default window of GET /api/mood.
const historyDays = 30

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type greetingResponse struct {
	Home string      `json:"home"`
	Chat string      `json:"chat"`
	Slot domain.Slot `json:"slot"`
	Date domain.Date `json:"date"`
}

type practicesResponse struct {
	Categories []catalog.CategoryInfo `json:"categories"`
	Practices  []domain.Practice      `json:"practices"`
}

type moodRequest struct {
	Mood         string `json:"mood"`
	Energy       *int   `json:"energy"`
	SleepQuality *int   `json:"sleep_quality"`
	Anxiety      *int   `json:"anxiety"`
	Note         string `json:"note"`
}

type moodResponse struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	Date         domain.Date `json:"date"`
	Slot         domain.Slot `json:"time_of_day"`
	Mood         domain.Mood `json:"mood"`
	Energy       *int        `json:"energy"`
	SleepQuality *int        `json:"sleep_quality"`
	Anxiety      *int        `json:"anxiety"`
	Note         *string     `json:"note"`
}

type getMoodResponse struct {
	Date  domain.Date   `json:"date"`
	Slot  domain.Slot   `json:"time_of_day"`
	Entry *moodResponse `json:"entry"`
}

type journalRequest struct {
	Answers domain.JournalAnswers `json:"answers"`
}

type journalResponse struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Date      domain.Date           `json:"date"`
	Answers   domain.JournalAnswers `json:"answers"`
	Complete  bool                  `json:"complete"`
}

type getJournalResponse struct {
	Date  domain.Date      `json:"date"`
	Entry *journalResponse `json:"entry"`
}

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type chatResponse struct {
	Response string `json:"response"`
	Fallback bool   `json:"fallback,omitempty"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGreeting(c *gin.Context) {
	now := s.now()
	c.JSON(http.StatusOK, greetingResponse{
		Home: greeting.ForHome(now),
		Chat: greeting.ForChat(now),
		Slot: greeting.DefaultSlot(now),
		Date: domain.DateOf(now),
	})
}

func (s *Server) handleListPractices(c *gin.Context) {
	var practices []domain.Practice
	if category := c.Query("category"); category != "" {
		practices = s.catalog.ListByCategory(domain.Category(category))
	} else {
		practices = s.catalog.All()
	}
	if practices == nil {
		practices = []domain.Practice{}
	}

	c.JSON(http.StatusOK, practicesResponse{
		Categories: s.catalog.Categories(),
		Practices:  practices,
	})
}

func (s *Server) handleGetPractice(c *gin.Context) {
	p, err := s.catalog.GetByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleGetMood(c *gin.Context) {
	key, ok := moodKeyParam(c)
	if !ok {
		return
	}

	entry, err := s.records.ResolveMood(c.Request.Context(), key)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, getMoodResponse{Date: key.Date, Slot: key.Slot, Entry: toMoodResponse(entry)})
}

func (s *Server) handlePutMood(c *gin.Context) {
	key, ok := moodKeyParam(c)
	if !ok {
		return
	}
	if s.rejectFuture(c, key.Date) {
		return
	}

	var req moodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	mood, err := domain.ParseMood(req.Mood)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	draft := records.MoodDraft{
		Mood:         mood,
		Energy:       levelPtr(req.Energy),
		SleepQuality: levelPtr(req.SleepQuality),
		Anxiety:      levelPtr(req.Anxiety),
		Note:         strings.TrimSpace(req.Note),
	}

	saved, err := s.records.SaveMood(c.Request.Context(), draft.Entry(key))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMoodResponse(saved))
}

func (s *Server) handleMoodHistory(c *gin.Context) {
	to := domain.DateOf(s.now())
	if v := c.Query("to"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		to = d
	}
	from := to.AddDays(-(historyDays - 1))
	if v := c.Query("from"); v != "" {
		d, err := domain.ParseDate(v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		from = d
	}

	entries, err := s.records.MoodHistory(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]*moodResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toMoodResponse(e))
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}

func (s *Server) handleGetJournal(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	entry, err := s.records.ResolveJournal(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, getJournalResponse{Date: date, Entry: toJournalResponse(entry)})
}

func (s *Server) handlePutJournal(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	if s.rejectFuture(c, date) {
		return
	}

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	saved, err := s.records.SaveJournal(c.Request.Context(), date, req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toJournalResponse(saved))
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}
	if len(req.Messages) == 0 {
		badRequest(c, "messages are required")
		return
	}
	for _, m := range req.Messages {
		if m.Role != domain.ChatRoleUser && m.Role != domain.ChatRoleAssistant {
			badRequest(c, "unknown role "+string(m.Role))
			return
		}
	}

	answer, err := s.chat.Reply(c.Request.Context(), req.Messages)
	if err != nil && !errors.Is(err, domain.ErrRemoteService) {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{Response: answer, Fallback: err != nil})
}

// ─────────────────────────────────────────────
// Record Helpers
// ─────────────────────────────────────────────

func dateParam(c *gin.Context) (domain.Date, bool) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return "", false
	}
	return date, true
}

func moodKeyParam(c *gin.Context) (domain.MoodKey, bool) {
	date, ok := dateParam(c)
	if !ok {
		return domain.MoodKey{}, false
	}
	slot, err := domain.ParseSlot(c.Param("slot"))
	if err != nil {
		badRequest(c, err.Error())
		return domain.MoodKey{}, false
	}
	return domain.MoodKey{Date: date, Slot: slot}, true
}

// rejectFuture answers 400 for dates after today. Records are only kept
// for days that have started.
func (s *Server) rejectFuture(c *gin.Context, date domain.Date) bool {
	if date.After(domain.DateOf(s.now())) {
		badRequest(c, "date is in the future")
		return true
	}
	return false
}

func levelPtr(v *int) *domain.Level {
	if v == nil {
		return nil
	}
	return domain.LevelPtr(*v)
}

func intPtr(l *domain.Level) *int {
	if l == nil {
		return nil
	}
	v := int(*l)
	return &v
}

func toMoodResponse(e *domain.MoodEntry) *moodResponse {
	if e == nil {
		return nil
	}
	return &moodResponse{
		ID:           string(e.ID),
		CreatedAt:    e.CreatedAt,
		Date:         e.Date,
		Slot:         e.Slot(),
		Mood:         e.Mood,
		Energy:       intPtr(e.Energy),
		SleepQuality: intPtr(e.SleepQuality()),
		Anxiety:      intPtr(e.Anxiety()),
		Note:         e.Note,
	}
}

func toJournalResponse(e *domain.JournalEntry) *journalResponse {
	if e == nil {
		return nil
	}
	return &journalResponse{
		ID:        string(e.ID),
		CreatedAt: e.CreatedAt,
		Date:      e.Date,
		Answers:   e.Answers,
		Complete:  e.Complete(),
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// writeError turns an application error into its user-visible response.
// Form input lives on the client, so retryable failures say so.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRecord):
		badRequest(c, err.Error())
	case errors.Is(err, domain.ErrPracticeNotFound), errors.Is(err, domain.ErrInvalidPractice):
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
	case errors.Is(err, domain.ErrTransientUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": domain.ErrTransientUnavailable.Error(), "retry": true})
	case errors.Is(err, domain.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrPersistence.Error(), "retry": true})
	default:
		observability.LoggerFromContext(c.Request.Context()).Error("unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
