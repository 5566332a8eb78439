package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tron2005/markvera/internal/cache"
	"github.com/tron2005/markvera/internal/config"
	"github.com/tron2005/markvera/internal/db"
	"github.com/tron2005/markvera/internal/fitness/activities"
	"github.com/tron2005/markvera/internal/fitness/analysis"
	fitnessmcp "github.com/tron2005/markvera/internal/fitness/mcp"
	"github.com/tron2005/markvera/internal/middleware"
	"github.com/tron2005/markvera/internal/misc"
	"github.com/tron2005/markvera/internal/telemetry/metrics"
	"github.com/tron2005/markvera/internal/telemetry/tracing"
)

const maxComputeBodyBytes = 4 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	location     *time.Location
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	tokenChecker *middleware.HashTokenChecker
	metricsCache *cache.LayeredMetricsCache

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	APITokenHash            string
	PostgresUser            string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	location, err := params.Config.Location()
	if err != nil {
		return nil, err
	}

	tokenChecker, err := middleware.NewHashTokenChecker(params.APITokenHash)
	if err != nil {
		return nil, fmt.Errorf("token checker: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("markvera", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "markvera-backend", rdb)
	if err != nil {
		return nil, err
	}

	metricsCache := cache.NewLayeredMetricsCache(
		cache.NewLocalMetricsCache(params.Config.LocalCacheSizeMB),
		cache.NewRedisMetricsCache(rdb),
		metricsManager,
	)

	return &Server{
		config:       params.Config,
		location:     location,
		dbPool:       dbPool,
		redisClient:  rdb,
		tokenChecker: tokenChecker,
		metricsCache: metricsCache,
		versionInfo:  params.VersionInfo,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) healthChecks() map[string]misc.HealthCheck {
	checks := map[string]misc.HealthCheck{}
	if s.dbPool != nil {
		checks["postgres"] = s.dbPool.Ping
	}
	if s.redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.redisClient.Ping(ctx).Err()
		}
	}
	return checks
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.healthChecks())
	miscHandler.SetupRoutes(r)

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	importLimit := middleware.RateLimit(reqRateLimiter, s.metricsManager, "import", s.config.ImportRateLimitAllowedPerMin)
	exportLimit := middleware.RateLimit(reqRateLimiter, s.metricsManager, "export", s.config.ExportRateLimitAllowedPerMin)

	activitiesRepo := activities.NewRepo(s.dbPool)
	activitiesHandler := activities.NewHandler(
		activities.NewService(activitiesRepo, s.metricsCache, s.metricsManager),
		s.location,
		s.config.MaxUploadSizeBytes,
	)
	r.HandleFunc("/fitness/{userId}/activities", activitiesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-activities")
	r.HandleFunc("/fitness/{userId}/activities", activitiesHandler.HandleAddManual).Methods("POST", "OPTIONS").Name("new-activity")
	r.Handle("/fitness/{userId}/activities/fit", importLimit(http.HandlerFunc(activitiesHandler.HandleImportFIT))).Methods("POST", "OPTIONS").Name("import-fit")
	r.HandleFunc("/fitness/{userId}/activities/{id}", activitiesHandler.HandleDeleteManual).Methods("DELETE", "OPTIONS").Name("remove-activity")
	r.HandleFunc("/fitness/{userId}/profile", activitiesHandler.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/fitness/{userId}/profile", activitiesHandler.HandlePutProfile).Methods("PUT", "OPTIONS").Name("update-profile")
	r.HandleFunc("/fitness/{userId}/resting-hr", activitiesHandler.HandleAddRestingHR).Methods("POST", "OPTIONS").Name("new-resting-hr")

	analysisService := analysis.NewService(
		activitiesRepo,
		s.metricsCache,
		s.config.MetricsCacheTTL.Duration,
		s.location,
		s.metricsManager,
	)
	analysisHandler := analysis.NewHandler(analysisService, s.location, maxComputeBodyBytes)
	r.HandleFunc("/fitness/compute", analysisHandler.HandleCompute).Methods("POST", "OPTIONS").Name("compute")
	r.HandleFunc("/fitness/{userId}/metrics", analysisHandler.HandleMetrics).Methods("GET", "OPTIONS").Name("metrics")
	r.HandleFunc("/fitness/{userId}/summary", analysisHandler.HandleSummary).Methods("GET", "OPTIONS").Name("summary")
	r.HandleFunc("/fitness/{userId}/weekly", analysisHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly")
	r.Handle("/fitness/{userId}/export.csv", exportLimit(http.HandlerFunc(analysisHandler.HandleExportCSV))).Methods("GET", "OPTIONS").Name("export-csv")
	r.Handle("/fitness/{userId}/export.parquet", exportLimit(http.HandlerFunc(analysisHandler.HandleExportParquet))).Methods("GET", "OPTIONS").Name("export-parquet")

	var schemaRepo fitnessmcp.SchemaRepo
	if s.dbPool != nil {
		schemaRepo = fitnessmcp.NewPoolSchemaRepo(s.dbPool)
	}
	mcpServer := fitnessmcp.NewServer(schemaRepo, analysisService, s.config.MCPUserID, s.location)
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)
	r.Handle("/mcp", otelhttp.NewHandler(mcpHandler, "mcp.streamable")).Methods("GET", "POST", "DELETE", "OPTIONS").Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
