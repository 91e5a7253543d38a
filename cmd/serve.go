package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	mazeapi "github.com/beka-birhanu/vinom-maze/api/maze"
	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/cache"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
	mazeCollection  = "mazes"
)

// server holds the dependencies of the HTTP server.
type server struct {
	cfg            config.Config
	appLogger      *logger.Logger
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       i.MazeRepo
	mazeCache      i.MazeCache
	mazeService    i.MazeService
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	router         *api.Router
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the maze HTTP API",
		Long: `Run the maze HTTP API configured from the environment (or a .env file).

Routes live under /api/v1. DELETE requires a bearer token with the mazes:write scope,
see the token command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := &server{cfg: config.Envs}
			defer s.close()
			if err := s.init(ctx); err != nil {
				return err
			}
			return s.run(ctx)
		},
	}
}

func (s *server) init(ctx context.Context) error {
	var err error
	s.appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		return err
	}
	if err := s.appLogger.SetLevel(s.cfg.LogLevel); err != nil {
		s.appLogger.Warning(fmt.Sprintf("Invalid LOG_LEVEL %q, using info", s.cfg.LogLevel))
	}

	if err := s.cfg.Validate(); err != nil {
		s.appLogger.Error(fmt.Sprintf("Invalid configuration: %v", err))
		return err
	}
	gin.SetMode(s.cfg.GinMode)

	steps := []func(context.Context) error{
		s.initMazeRepo,
		s.initMazeCache,
		s.initMazeService,
		s.initMazeController,
		s.initJWTTokenizer,
		s.initRouter,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *server) initMazeRepo(ctx context.Context) error {
	if s.cfg.Storage == config.StorageMemory {
		s.mazeRepo = repo.NewMemoryMazeRepo()
		s.appLogger.Info("In-memory maze repository initialized")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	uri := fmt.Sprintf("mongodb://%s:%v", s.cfg.DBHost, s.cfg.DBPort)
	if s.cfg.DBUser != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%v", s.cfg.DBUser, s.cfg.DBPassword, s.cfg.DBHost, s.cfg.DBPort)
	}

	var err error
	s.mongoClient, err = mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		s.appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		return err
	}
	if err = s.mongoClient.Ping(connectCtx, nil); err != nil {
		s.appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		return err
	}
	s.appLogger.Info("Connected to MongoDB")

	s.mazeRepo = repo.NewMongoMazeRepo(s.mongoClient, s.cfg.DBName, mazeCollection)
	s.appLogger.Info("Maze repository initialized")
	return nil
}

func (s *server) initMazeCache(ctx context.Context) error {
	if s.cfg.RedisAddr == "" {
		s.appLogger.Info("REDIS_ADDR not set, maze cache disabled")
		return nil
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := s.redisClient.Ping(pingCtx).Err(); err != nil {
		s.appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		return err
	}

	c, err := cache.NewRedisMazeCache(s.redisClient, s.cfg.CacheTTLSeconds)
	if err != nil {
		s.appLogger.Error(fmt.Sprintf("Creating maze cache: %v", err))
		return err
	}
	s.mazeCache = c
	s.appLogger.Info("Redis maze cache initialized")
	return nil
}

func (s *server) initMazeService(context.Context) error {
	mazeLogger, err := logger.New("MAZE", config.ColorCyan, os.Stdout)
	if err != nil {
		return err
	}
	_ = mazeLogger.SetLevel(s.cfg.LogLevel)

	s.mazeService, err = service.NewMazeService(s.mazeRepo, s.mazeCache, mazeLogger, &service.Options{
		MaxDimension: s.cfg.MaxMazeDimension,
	})
	if err != nil {
		s.appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		return err
	}
	s.appLogger.Info("Maze service initialized")
	return nil
}

func (s *server) initMazeController(context.Context) error {
	var err error
	s.mazeController, err = mazeapi.NewMazeController(s.mazeService)
	if err != nil {
		s.appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		return err
	}
	s.appLogger.Info("Maze controller initialized")
	return nil
}

func (s *server) initJWTTokenizer(context.Context) error {
	s.jwtTokenizer = token.NewJwtService(s.cfg.JWTSecret, s.cfg.JWTIssuer)
	s.appLogger.Info("JWT Tokenizer initialized")
	return nil
}

func (s *server) initRouter(context.Context) error {
	s.router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", s.cfg.HostIP, s.cfg.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{s.mazeController},
		AuthorizationMiddleware: identity.Authoriz(s.jwtTokenizer, identity.ScopeWrite),
	})
	s.appLogger.Info("Router initialized")
	return nil
}

// run serves until ctx is cancelled, then drains in-flight requests.
func (s *server) run(ctx context.Context) error {
	srv := s.router.Server()
	errCh := make(chan error, 1)
	go func() {
		s.appLogger.Info(fmt.Sprintf("Listening on %s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			s.appLogger.Error(fmt.Sprintf("Starting server: %v", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.appLogger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(ctx)
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
}
