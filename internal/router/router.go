package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/yalex-kim/timing-trainer/internal/config"
	"github.com/yalex-kim/timing-trainer/internal/handlers"
	"github.com/yalex-kim/timing-trainer/internal/models"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitExceeded(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, battery *models.Battery) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("timing_session", store))

	router.Use(CSRFProtection())
	router.Use(UserLoaderMiddleware(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	authHandler := handlers.NewAuthHandler(log)
	trainingHandler := handlers.NewTrainingHandler(log, battery)
	resultsHandler := handlers.NewResultsHandler(log, battery)
	standardsHandler := handlers.NewStandardsHandler()
	reportHandler := handlers.NewReportHandler(log, battery)
	userHandler := handlers.NewUserHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitExceeded,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/register", limiter, authHandler.Register)
		api.POST("/login", limiter, authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/standards", standardsHandler.Tables)
		api.GET("/standards/classify", standardsHandler.Classify)

		authorized := api.Group("/")
		authorized.Use(AuthRequired(log))
		{
			training := authorized.Group("/training")
			{
				training.GET("/battery", trainingHandler.GetBattery)
				training.POST("/sessions", trainingHandler.CreateSession)
				training.GET("/sessions", trainingHandler.ListSessions)
				training.GET("/sessions/:key", trainingHandler.GetSession)
				training.POST("/sessions/:key/submit", trainingHandler.SubmitSession)
			}

			charts := authorized.Group("/charts")
			{
				charts.GET("/timeline", resultsHandler.Timeline)
				charts.GET("/bias", resultsHandler.Bias)
			}

			reports := authorized.Group("/reports")
			{
				reports.POST("", reportHandler.Build)
				reports.GET("/latest", reportHandler.Latest)
			}

			profile := authorized.Group("/profile")
			{
				profile.GET("", userHandler.Profile)
				profile.PUT("/info", userHandler.UpdateInfo)
				profile.PUT("/password", userHandler.UpdatePassword)
				profile.PUT("/notifications", userHandler.UpdateNotificationSettings)
				profile.POST("/delete", userHandler.DeleteAccount)
			}
		}
	}

	return router
}
