package server

import (
	"context"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"trivia/internal/auth"
	"trivia/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	store  *Store
	db     *gorm.DB
	ws     *wsHub
	cfg    config.Config
	tokens *auth.Tokens
	users  *memoryUsers
	ids    *memoryIDs
	rngMu  sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
}

// New builds a server. A nil conn keeps every game and user in memory.
func New(conn *gorm.DB, cfg config.Config) *Server {
	registerValidators()
	s := &Server{
		db:     conn,
		ws:     newWSHub(),
		cfg:    cfg,
		tokens: auth.NewTokens(cfg.TokenSecret, cfg.TokenTTL()),
		users:  newMemoryUsers(),
		ids:    newMemoryIDs(),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    func() time.Time { return time.Now().UTC() },
	}
	s.store = NewStore(cfg.GameQueueSize, s.persist, s.loadGame, s.broadcastGameUpdate)
	return s
}

func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health-check", s.handleHealthCheck)

	api := router.Group("/api/v1")
	api.POST("/users", s.handleCreateUser)
	api.GET("/games/:code", s.handleGetGame)
	api.GET("/games/:code/events", s.handleListEvents)
	api.GET("/play/:code", s.handleWebsocket)

	authed := api.Group("", s.requireUser)
	authed.POST("/games", s.handleCreateGame)
	authed.POST("/games/:code/open", s.handleOpenGame)
	authed.POST("/games/:code/join", s.handleJoinGame)
	authed.POST("/games/:code/begin", s.handleBeginGame)
	authed.POST("/games/:code/actions", s.handlePerformAction)
	return router
}

// Close stops every game runner and waits for queued jobs to finish.
func (s *Server) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

func (s *Server) shuffle(n int, swap func(i, j int)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng.Shuffle(n, swap)
}

// boardRand returns a generator seeded from the server's, so boards can be
// built outside the lock.
func (s *Server) boardRand() *rand.Rand {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))
}
