package httpadapter

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PabloGalante/farum-calm/internal/app/chat"
	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/catalog"
)

type Server struct {
	catalog *catalog.Catalog
	records *records.Store
	chat    *chat.Service
	now     func() time.Time

	router *gin.Engine
}

type Option func(*Server)

// WithNow sets the clock used for greetings and for deciding what "today" is.
func WithNow(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(cat *catalog.Catalog, store *records.Store, chatSvc *chat.Service, opts ...Option) *Server {
	s := &Server{
		catalog: cat,
		records: store,
		chat:    chatSvc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery(), withRequestID(), withLogging(), withCORS())

	router.GET("/healthz", s.handleHealthz)

	api := router.Group("/api")
	{
		api.GET("/greeting", s.handleGreeting)

		api.GET("/practices", s.handleListPractices)
		api.GET("/practices/:id", s.handleGetPractice)

		api.GET("/mood", s.handleMoodHistory)
		api.GET("/mood/:date/:slot", s.handleGetMood)
		api.PUT("/mood/:date/:slot", s.handlePutMood)

		api.GET("/journal/:date", s.handleGetJournal)
		api.PUT("/journal/:date", s.handlePutJournal)

		api.POST("/chat", s.handleChat)
	}

	s.router = router
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
