package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cityfix-be/config"
	"cityfix-be/controllers"
	"cityfix-be/identity"
	"cityfix-be/metrics"
	"cityfix-be/middlewares"
	"cityfix-be/realtime"
	"cityfix-be/routes"
	"cityfix-be/search"
	"cityfix-be/services"
	"cityfix-be/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting MongoDB: %v", err)
		}
	}()
	if err := config.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Println("MongoDB connection established successfully!")

	st := store.New(db)
	m := metrics.New(prometheus.DefaultRegisterer)

	hub := realtime.NewHub(m)
	go hub.Run(ctx)

	var transport services.Transport = hub
	var redisClient *redis.Client
	if cfg.UseRedis() {
		redisClient, err = config.ConnectRedis(ctx, cfg.RedisAddress, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Redis: %v", err)
		}
		defer redisClient.Close()

		if cfg.RealtimeFanout {
			relay := realtime.NewRedisRelay(redisClient, hub)
			if err := relay.Start(ctx); err != nil {
				log.Fatalf("Realtime relay: %v", err)
			}
			transport = relay
			log.Println("[realtime] fan-out through Redis enabled")
		}
	}

	broadcaster := services.NewBroadcaster(m)
	if err := broadcaster.Initialize(transport); err != nil {
		log.Fatalf("Realtime: %v", err)
	}

	var (
		verifier identity.Verifier
		accounts services.AccountManager
		push     services.PushNotifier = services.LogNotifier{}
	)
	if cfg.FirebaseCredentialsPath != "" {
		fb, err := identity.NewFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Firebase: %v", err)
		}
		verifier, accounts = fb, fb
		push = services.NewFCMNotifier(fb.Messaging())
	} else {
		jwtVerifier, err := identity.NewJWTVerifier(cfg.IdentityJWTSecret)
		if err != nil {
			log.Fatalf("Identity: %v", err)
		}
		verifier, accounts = jwtVerifier, identity.LocalAccounts{}
		log.Println("[identity] using shared-secret JWT verification; push notifications are logged only")
	}

	var index search.IssueIndex = search.Noop{}
	if cfg.MeiliURL != "" {
		meili := search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meili.Close()
		index = meili
	}

	ledger := services.NewVoteLedger(st, broadcaster, m)
	issueService := services.NewIssueService(st, services.NewRoutingResolver(st), ledger, broadcaster, index)
	accountService := services.NewAccountService(st)
	adminService := services.NewAdminService(services.AdminDeps{
		Store:       st,
		Accounts:    accounts,
		Ledger:      ledger,
		Analytics:   services.NewAnalyticsAggregator(st, m),
		Broadcaster: broadcaster,
		Notifier:    services.NewResolutionNotifier(push, st, m),
		Index:       index,
	})

	if cfg.SuperAdminSubject != "" {
		if _, err := accountService.EnsureSuperAdmin(ctx, cfg.SuperAdminSubject, cfg.SuperAdminEmail, ""); err != nil {
			log.Fatalf("Super admin bootstrap: %v", err)
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: cfg.CORSOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "CityFix API"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guards := routes.Guards{
		Verify: middlewares.VerifyIdentity(verifier),
		Auth:   middlewares.AuthMiddleware(verifier, st),
	}
	if redisClient != nil && cfg.IssueDailyLimit > 0 {
		guards.IssueLimit = middlewares.IssueRateLimiter(redisClient, cfg.IssueLimitPrefix, cfg.IssueDailyLimit, m)
	}
	routes.Register(r, guards, routes.Controllers{
		Auth:     controllers.NewAuthController(accountService, cfg.RequestTimeout),
		Issues:   controllers.NewIssueController(issueService, cfg.RequestTimeout),
		Admin:    controllers.NewAdminController(adminService, cfg.RequestTimeout),
		Realtime: controllers.NewRealtimeController(hub),
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
}
