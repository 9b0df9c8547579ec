package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/thereayou/meetclone/internal/config"
	"github.com/thereayou/meetclone/internal/database"
	"github.com/thereayou/meetclone/internal/handlers"
	"github.com/thereayou/meetclone/internal/mailer"
	"github.com/thereayou/meetclone/internal/middleware"
	"github.com/thereayou/meetclone/internal/services"
	"github.com/thereayou/meetclone/internal/session"
	"github.com/thereayou/meetclone/pkg/auth"
)

type Server struct {
	Router *gin.Engine
	Config *config.Configuration
	DB     *database.Database
	Redis  *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	cfg.SetupLogging()

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.Database.URL); err != nil {
		logrus.WithError(err).Fatal("postgres connect failed")
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logrus.WithError(err).Fatal("invalid redis URL")
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.WithError(err).Fatal("redis connect failed")
	}

	sessionTTL := time.Duration(cfg.Security.SessionMinutes) * time.Minute
	tokens := auth.NewTokenManager(cfg.Security.JWTKey, sessionTTL)
	sessions := session.NewRedisStore(rdb, sessionTTL)

	mail := newMailer(cfg)

	accounts := services.NewAccountService(dbConn)
	meetings := services.NewMeetingService(dbConn)

	pageH := handlers.NewPageHandler(meetings)
	authH := handlers.NewAuthHandler(accounts, sessions, tokens, sessionTTL)
	resetH := handlers.NewResetHandler(accounts, mail, sessions, tokens, sessionTTL)
	meetingH := handlers.NewMeetingHandler(meetings, sessions, tokens, sessionTTL)

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	router.LoadHTMLGlob("web/templates/*.html")
	router.Use(middleware.SessionMiddleware(tokens, sessions))

	PageEndpoints(router, pageH, authH, resetH, meetingH)

	return &Server{
		Router: router,
		Config: cfg,
		DB:     dbConn,
		Redis:  rdb,
	}
}

// newMailer picks the OTP delivery backend: a queue publisher when
// RabbitMQ is configured, the log otherwise.
func newMailer(cfg *config.Configuration) mailer.Mailer {
	if cfg.Queue.URL == "" {
		return mailer.LogMailer{}
	}

	conn, err := amqp.Dial(cfg.Queue.URL)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq connect failed, falling back to log mailer")
		return mailer.LogMailer{}
	}

	queueMailer, err := mailer.NewQueueMailer(conn, cfg.Queue.EmailQueue)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq queue setup failed, falling back to log mailer")
		return mailer.LogMailer{}
	}

	logrus.WithField("queue", cfg.Queue.EmailQueue).Info("OTP emails will be published to RabbitMQ")
	return queueMailer
}

func (s *Server) Run() {
	logrus.WithField("port", s.Config.Server.Port).Info("server starting")
	if err := s.Router.Run(":" + s.Config.Server.Port); err != nil {
		logrus.WithError(err).Fatal("server run error")
	}
}
