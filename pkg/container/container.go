package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"shop-backend/internal/config"
	infraCache "shop-backend/internal/infrastructure/cache"
	"shop-backend/internal/infrastructure/database"
	"shop-backend/pkg/cache"
	"shop-backend/pkg/jwt"

	addressHandler "shop-backend/internal/domains/address/handler"
	addressRepo "shop-backend/internal/domains/address/repository"
	addressService "shop-backend/internal/domains/address/service"
	brandHandler "shop-backend/internal/domains/brand/handler"
	brandRepo "shop-backend/internal/domains/brand/repository"
	brandService "shop-backend/internal/domains/brand/service"
	cacheHandler "shop-backend/internal/domains/cache/handler"
	feedbackHandler "shop-backend/internal/domains/feedback/handler"
	feedbackRepo "shop-backend/internal/domains/feedback/repository"
	feedbackService "shop-backend/internal/domains/feedback/service"
	locationHandler "shop-backend/internal/domains/location/handler"
	locationRepo "shop-backend/internal/domains/location/repository"
	locationService "shop-backend/internal/domains/location/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application.
// Dùng chung cho cmd/api, cmd/worker và cmd/seed.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client // nil khi QUEUE_ENABLED=false

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	CountryRepo  locationRepo.CountryRepository
	ProvinceRepo locationRepo.ProvinceRepository
	AddressRepo  addressRepo.Repository
	BrandRepo    brandRepo.Repository
	FeedbackRepo feedbackRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	TreeCache       *locationService.TreeCache
	CountryService  locationService.CountryService
	ProvinceService locationService.ProvinceService
	AddressService  addressService.Service
	BrandService    brandService.Service
	FeedbackService feedbackService.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	CountryHandler  *locationHandler.CountryHandler
	ProvinceHandler *locationHandler.ProvinceHandler
	AddressHandler  *addressHandler.AddressHandler
	BrandHandler    *brandHandler.BrandHandler
	FeedbackHandler *feedbackHandler.FeedbackHandler
	CacheHandler    *cacheHandler.CacheHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph.
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Cache, Queue client)
// 3. Repositories
// 4. Services
// 5. Handlers
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.App.EnsureSchema {
		if err := database.EnsureSchema(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		log.Info().Msg("Schema ensured")
	}

	// ========================================
	// STEP 3: CACHE + QUEUE
	// ========================================
	// Redis lỗi không critical: factory fallback về memory cache
	c.Cache = infraCache.New(cfg)

	if cfg.Queue.Enabled {
		c.AsynqClient = asynq.NewClient(RedisClientOpt(cfg))
		log.Info().Str("redis", cfg.Redis.Host).Msg("Asynq client enabled")
	}

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// NewInMemory dựng container với memory repositories và memory cache.
// Không có DB và queue; dùng cho router test.
func NewInMemory(cfg *config.Config) *Container {
	store := locationRepo.NewMemoryStore()
	c := &Container{
		Config: cfg,
		Cache:  infraCache.NewMemoryCache(),

		CountryRepo:  store.Countries(),
		ProvinceRepo: store.Provinces(),
		AddressRepo:  addressRepo.NewMemoryRepository(),
		BrandRepo:    brandRepo.NewMemoryRepository(),
		FeedbackRepo: feedbackRepo.NewMemoryRepository(),
	}
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.initServices()
	c.initHandlers()
	return c
}

// RedisClientOpt dùng chung cho asynq client, server và scheduler
func RedisClientOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CountryRepo = locationRepo.NewPostgresCountryRepository(pool)
	c.ProvinceRepo = locationRepo.NewPostgresProvinceRepository(pool)
	c.AddressRepo = addressRepo.NewPostgresRepository(pool)
	c.BrandRepo = brandRepo.NewPostgresRepository(pool)
	c.FeedbackRepo = feedbackRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// queue nil-interface khi tắt, tránh typed-nil *asynq.Client
	var queue locationService.TaskEnqueuer
	if c.AsynqClient != nil {
		queue = c.AsynqClient
	}
	c.TreeCache = locationService.NewTreeCache(c.Cache, c.ProvinceRepo, queue)

	// AddressRepo là AddressReferenceChecker cho delete country/province
	c.CountryService = locationService.NewCountryService(c.CountryRepo, c.AddressRepo, c.TreeCache)
	c.ProvinceService = locationService.NewProvinceService(
		c.CountryRepo,
		c.ProvinceRepo,
		c.AddressRepo,
		c.TreeCache,
		c.Config.Location.ProvinceTreeDepth,
	)

	c.AddressService = addressService.NewAddressService(
		c.AddressRepo,
		c.CountryRepo,
		c.ProvinceRepo,
		c.ProvinceService, // tree snapshot để resolve tên
		c.Config.Location.DefaultCountryID,
	)
	c.BrandService = brandService.NewBrandService(c.BrandRepo, c.Cache)
	c.FeedbackService = feedbackService.NewFeedbackService(c.FeedbackRepo)
}

func (c *Container) initHandlers() {
	c.CountryHandler = locationHandler.NewCountryHandler(c.CountryService)
	c.ProvinceHandler = locationHandler.NewProvinceHandler(c.ProvinceService, c.Config.Location.DefaultCountryID)
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.BrandHandler = brandHandler.NewBrandHandler(c.BrandService)
	c.FeedbackHandler = feedbackHandler.NewFeedbackHandler(c.FeedbackService)
	c.CacheHandler = cacheHandler.NewCacheHandler().
		Register("province_trees", c.TreeCache.Clear).
		Register("brands", c.BrandService.ClearCache)
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
