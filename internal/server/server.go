package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"anoa.com/swetter/internal/agent"
	"anoa.com/swetter/internal/agent/agents"
	"anoa.com/swetter/internal/agent/providers"
	"anoa.com/swetter/internal/config"
	"anoa.com/swetter/internal/middleware"
	"anoa.com/swetter/pkg/ratelimiter"

	commentHttp "anoa.com/swetter/internal/modules/comment/delivery/http"
	commentRepo "anoa.com/swetter/internal/modules/comment/repository"
	commentService "anoa.com/swetter/internal/modules/comment/service"

	moderationService "anoa.com/swetter/internal/modules/moderation/service"

	notiHttp "anoa.com/swetter/internal/modules/notification/delivery/http"
	notifService "anoa.com/swetter/internal/modules/notification/service"

	postHttp "anoa.com/swetter/internal/modules/post/delivery/http"
	postRepo "anoa.com/swetter/internal/modules/post/repository"
	postService "anoa.com/swetter/internal/modules/post/service"

	replyHttp "anoa.com/swetter/internal/modules/reply/delivery/http"
	replyRepo "anoa.com/swetter/internal/modules/reply/repository"
	replyService "anoa.com/swetter/internal/modules/reply/service"

	searchHttp "anoa.com/swetter/internal/modules/search/delivery/http"
	searchService "anoa.com/swetter/internal/modules/search/service"

	statHttp "anoa.com/swetter/internal/modules/stat/delivery/http"
	statRepo "anoa.com/swetter/internal/modules/stat/repository"
	statService "anoa.com/swetter/internal/modules/stat/service"

	userHttp "anoa.com/swetter/internal/modules/user/delivery/http"
	userRepo "anoa.com/swetter/internal/modules/user/repository"
	userService "anoa.com/swetter/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	scheduler   *agent.Scheduler
	llm         providers.LLMProvider
}

// NewServer wires every module. redisClient may be nil; search is enabled only when MEILISEARCH_HOST is set.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, llm providers.LLMProvider) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	// Search Module
	var meiliSvc searchService.MeiliSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewMeiliSearchService(meiliClient)
	}
	searchHandler := searchHttp.NewSearchHandler(meiliSvc, cfg.MeiliSearchHost)

	// Notification Module
	notificationSvc := notifService.NewNotificationService(redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc)

	moderationSvc := moderationService.NewModerationService(llm, cfg.LLMTimeout)
	limiter := ratelimiter.NewLimiter(redisClient, cfg.RateLimitGlobal)

	postRepo := postRepo.NewPostRepository(db)
	commentRepo := commentRepo.NewCommentRepository(db)
	replyRepo := replyRepo.NewReplyRepository(db)

	replySvc := replyService.NewReplyService(replyRepo, commentRepo, moderationSvc, limiter, notificationSvc)
	replyHandler := replyHttp.NewReplyHandler(replySvc)

	// Auto-reply Agent
	scheduler := agent.NewScheduler()
	autoReplyAgent := agents.NewAutoReplyAgent(scheduler, moderationSvc, replySvc, notificationSvc, agent.RetryPolicy{
		Interval:    cfg.AutoReply.RetryInterval,
		Multiplier:  cfg.AutoReply.Multiplier,
		MaxInterval: cfg.AutoReply.MaxInterval,
		MaxAttempts: cfg.AutoReply.MaxAttempts,
	})

	postSvc := postService.NewPostService(postRepo, moderationSvc, limiter, meiliSvc)
	postHandler := postHttp.NewPostHandler(postSvc)

	commentSvc := commentService.NewCommentService(commentRepo, postRepo, moderationSvc, limiter, notificationSvc, autoReplyAgent)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	statSvc := statService.NewStatService(userRepo, statRepo.NewStatRepository(db), scheduler)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	// Public routes (no auth required)
	router.POST("/registration/", authHandler.Register)
	router.POST("/login/", authHandler.Login)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (apply auth middleware explicitly)
	protected := router.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Post routes
		protected.POST("/post/", postHandler.CreatePost)
		protected.GET("/post/:post_id", postHandler.GetPost)
		protected.PUT("/post/:post_id", postHandler.UpdatePost)
		protected.DELETE("/post/:post_id", postHandler.DeletePost)
		protected.GET("/posts/", postHandler.GetAllPosts)
		protected.GET("/posts/:user_id", postHandler.GetUserPosts)

		// Comment routes
		protected.POST("/comment/", commentHandler.CreateComment)
		protected.GET("/comment/:comment_id", commentHandler.GetComment)
		protected.PUT("/comment/:comment_id", commentHandler.UpdateComment)
		protected.DELETE("/comment/:comment_id", commentHandler.DeleteComment)
		protected.GET("/comments/:post_id", commentHandler.GetPostComments)
		protected.GET("/users/:user_id/comments", commentHandler.GetUserComments)

		// Reply routes
		protected.POST("/reply/", replyHandler.CreateReply)
		protected.GET("/reply/:reply_id", replyHandler.GetReply)
		protected.PUT("/reply/:reply_id", replyHandler.UpdateReply)
		protected.DELETE("/reply/:reply_id", replyHandler.DeleteReply)
		protected.GET("/replies/:comment_id", replyHandler.GetCommentReplies)

		// Notification routes
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		// Stat routes
		protected.GET("/stats", statHandler.GetStats)

		// Search routes
		protected.GET("/search/token", searchHandler.GetSearchToken)
	}

	return &Server{
		engine: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:          db,
		redisClient: redisClient,
		scheduler:   scheduler,
		llm:         llm,
	}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Scheduler() *agent.Scheduler {
	return s.scheduler
}

// Start launches background workers. Call it before Run.
func (s *Server) Start() {
	s.scheduler.Start()
}

// Run serves HTTP until Shutdown is called.
func (s *Server) Run() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, then stops the scheduler. Pending auto-replies are lost.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if err := s.scheduler.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("scheduler: %w", err))
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if s.llm != nil {
		s.llm.Close()
	}
	return errors.Join(errs...)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
