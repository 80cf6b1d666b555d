package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/api"
	api_i "github.com/beka-birhanu/vinom-backrooms/api/i"
	"github.com/beka-birhanu/vinom-backrooms/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-backrooms/api/maze"
	"github.com/beka-birhanu/vinom-backrooms/config"
	logger "github.com/beka-birhanu/vinom-backrooms/infrastruture/log"
	pb "github.com/beka-birhanu/vinom-backrooms/infrastruture/pb_encoder"
	"github.com/beka-birhanu/vinom-backrooms/infrastruture/repo"
	"github.com/beka-birhanu/vinom-backrooms/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-backrooms/infrastruture/token"
	"github.com/beka-birhanu/vinom-backrooms/service"
	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const baseURL = "/api"

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	userRepo        i.UserRepo
	layoutRepo      i.LayoutRepo
	layoutService   *service.LayoutService
	generationQueue *service.GenerationQueue
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	mazeController  api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func newLogger(name, colour string) i.Logger {
	l, err := logger.New(name, colour, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", name, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)
	if config.Envs.DBUser == "" {
		uri = fmt.Sprintf("mongodb://%s:%v", config.Envs.DBHost, config.Envs.DBPort)
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
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

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	var err error
	userRepo, err = repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating user repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("User repository initialized")

	layoutRepo, err = repo.NewLayoutRepo(client, config.Envs.DBName, "layouts")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating layout repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Layout repository initialized")
}

func initLayoutService() {
	var err error
	layoutService, err = service.NewLayoutService(service.LayoutServiceConfig{
		Repo:   layoutRepo,
		Logger: newLogger("GENERATOR", config.ColorCyan),
		Defaults: service.Defaults{
			Width:       config.Envs.MazeWidth,
			Height:      config.Envs.MazeHeight,
			MaxMazeSize: config.Envs.MaxMazeSize,
			RoomXSize:   config.Envs.RoomXSize,
			RoomZSize:   config.Envs.RoomZSize,
			Pools: service.PoolsFromNames(
				config.Envs.EntryPrefabs,
				config.Envs.ExitPrefabs,
				config.Envs.CornerPrefabs,
				config.Envs.BorderPrefabs,
				config.Envs.InteriorPrefabs,
				config.Envs.RoomPrefabs,
			),
		},
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating layout service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Layout service initialized")
}

func initGenerationQueue() {
	sortedQueue, err := sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sorted queue: %v", err))
		os.Exit(1)
	}

	generationQueue, err = service.NewGenerationQueue(sortedQueue, layoutService, newLogger("QUEUE", config.ColorMagenta), &service.QueueOptions{
		Events:    layoutService.Events(),
		BatchSize: int64(config.Envs.QueueBatchSize),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generation queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generation queue initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.MustJWTSecret(), config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewDesignerController(authService)

	var err error
	mazeController, err = mazeapi.NewMazeController(mazeapi.Config{
		Generator: layoutService,
		Queue:     generationQueue,
		Events:    layoutService.Events(),
		Encoder:   pb.Protobuf{},
		Logger:    newLogger("API", config.ColorBlue),
		BaseURL:   baseURL + "/v1",
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 baseURL,
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initLayoutService()
	initGenerationQueue()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
