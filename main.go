package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-floodfill/api"
	api_i "github.com/beka-birhanu/vinom-floodfill/api/i"
	"github.com/beka-birhanu/vinom-floodfill/api/identity"
	navigationapi "github.com/beka-birhanu/vinom-floodfill/api/navigation"
	"github.com/beka-birhanu/vinom-floodfill/config"
	"github.com/beka-birhanu/vinom-floodfill/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-floodfill/infrastruture/log"
	"github.com/beka-birhanu/vinom-floodfill/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-floodfill/infrastruture/repo"
	"github.com/beka-birhanu/vinom-floodfill/infrastruture/token"
	"github.com/beka-birhanu/vinom-floodfill/service"
	"github.com/beka-birhanu/vinom-floodfill/service/i"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient          *mongo.Client
	redisClient          *redis.Client
	operatorRepo         *repo.OperatorRepo
	runRepo              *repo.RunRepo
	runCache             i.RunCache
	solveMetrics         *metrics.SolveMetrics
	navigationDefaults   config.Navigation
	navigationService    i.Navigation
	navigationController api_i.Controller
	jwtTokenizer         i.Tokenizer
	authService          i.Authenticator
	authController       api_i.Controller
	router               *api.Router
	appLogger            i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context) {
	operatorRepo = repo.NewOperatorRepo(mongoClient, config.Envs.DBName, "operators")
	if err := operatorRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating operator indexes: %v", err))
	}

	runRepo = repo.NewRunRepo(mongoClient, config.Envs.DBName, "runs")
	if err := runRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating run indexes: %v", err))
	}
	appLogger.Info("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRunCache() {
	var err error
	runCache, err = cache.NewRedisRunCache(redisClient, config.Envs.CacheTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run cache initialized")
}

func initMetrics() {
	var err error
	solveMetrics, err = metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Registering metrics: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Metrics initialized")
}

func initNavigationDefaults() {
	var err error
	navigationDefaults, err = config.LoadNavigation()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading navigation defaults: %v", err))
		os.Exit(1)
	}
	appLogger.Info(fmt.Sprintf("Navigation defaults: size=%d start=%s goals=%v heading=%s",
		navigationDefaults.GridSize, navigationDefaults.Start, navigationDefaults.Goals, navigationDefaults.Heading))
}

func initNavigationService() {
	navLogger, err := logger.New("NAVIGATION", config.ColorBlue, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating navigation logger: %v", err))
		os.Exit(1)
	}

	navigationService, err = service.NewNavigationService(service.NavigationConfig{
		Runs:     runRepo,
		Cache:    runCache,
		Metrics:  solveMetrics,
		Logger:   navLogger,
		Defaults: navigationDefaults,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating navigation service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Navigation service initialized")
}

func initNavigationController() {
	var err error
	navigationController, err = navigationapi.NewNavigationController(navigationService)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating navigation controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Navigation controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(operatorRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, navigationController},
		AuthorizationMiddleware: identity.Authoriz(t),
		MetricsHandler:          metrics.Handler(prometheus.DefaultGatherer),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	config.Load()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRepos(ctx)
	initRedis(ctx)
	defer redisClient.Close()

	initRunCache()
	initMetrics()
	initNavigationDefaults()
	initNavigationService()
	initNavigationController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
