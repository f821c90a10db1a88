package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/db"
	"storefront/internal/infra/events"
	"storefront/internal/infra/memory"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logging"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 永続化まわりの部品
type stores struct {
	users     repository.UserRepository
	items     repository.ItemRepository
	carts     repository.CartRepository
	cartItems repository.CartItemRepository
	tx        repository.TransactionManager
	close     func()
}

func main() {
	// .envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.New("dev", "info").Error(context.Background(), "load config", "err", err)
		os.Exit(1)
	}

	log := logging.New(cfg.GoEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error(context.Background(), "server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logging.SlogLogger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	//注文ステータスのキャッシュ（REDIS_ADDRが無ければ無し）
	var statusCache usecase.OrderStatusCache = usecase.NopStatusCache{}
	if cfg.RedisAddr != "" {
		rdb := cache.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := cache.Ping(ctx, rdb); err != nil {
			log.Warn(ctx, "redis unreachable, status cache still enabled", "addr", cfg.RedisAddr, "err", err)
		}
		statusCache = cache.NewOrderStatusCache(rdb)
	}

	//注文イベント（KAFKA_BROKERSが無ければ無し）
	var orderEvents usecase.OrderEventPublisher = usecase.NopOrderEvents{}
	if len(cfg.KafkaBrokers) > 0 {
		prod := events.NewProducer(events.NewKafkaWriter(cfg.KafkaBrokers), log, 1024)
		prod.Start()
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prod.Close(closeCtx); err != nil {
				log.Warn(context.Background(), "kafka producer close", "err", err)
			}
		}()
		orderEvents = events.NewOrderPublisher(prod, cfg.KafkaTopicPrefix)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	tokens := auth.NewJWTTokenService(cfg.JWTSecret, cfg.SessionTTL, idGen)
	v := validator.NewAuthValidator()

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(st.users, hasher, v, tokens, clock, cfg.AdminEmails)
	loginUC := auth.NewLoginUsecase(st.users, verifier, v, tokens, clock)
	logoutUC := auth.NewLogoutUsecase(st.users)
	authenticateUC := auth.NewAuthenticateUsecase(st.users, tokens)

	itemUC := usecase.NewItemUsecase(st.items, log, cfg.SeedEnabled)
	cartUC := usecase.NewCartUsecase(st.carts, st.cartItems, st.items)
	orderUC := usecase.NewOrderUsecase(st.tx, orderEvents, statusCache, log, cfg.CheckoutTimeout)

	//Handler生成
	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(registerUC, loginUC, logoutUC, log),
		AdminUser: handler.NewAdminUserHandler(logoutUC, log),
		Item:      handler.NewItemHandler(itemUC, log),
		Cart:      handler.NewCartHandler(cartUC, log),
		Order:     handler.NewOrderHandler(orderUC, log),
	}

	e := server.New(log, server.Options{CORSOrigins: cfg.CORSOrigins})
	server.RegisterRoutes(e, handlers, middleware.AuthSession(authenticateUC))

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), log)
}

// STOREに応じてPostgresかメモリを選ぶ
func openStores(ctx context.Context, cfg config.Config, log logging.Logger) (stores, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn(ctx, "using in-memory store; data is lost on restart")
		m := memory.NewStore()
		return stores{
			users:     m.Users(),
			items:     m.Items(),
			carts:     m.Carts(),
			cartItems: m.CartItems(),
			tx:        m,
			close:     func() {},
		}, nil
	}

	//DB接続
	sqlDB, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		return stores{}, err
	}
	if err := db.Migrate(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return stores{}, err
	}
	gormDB, err := db.Connect(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return stores{}, err
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	return stores{
		users:     infraRepo.NewUserGormRepository(gormDB),
		items:     infraRepo.NewItemGormRepository(gormDB),
		carts:     cartRepo,
		cartItems: cartRepo,
		tx:        infraRepo.NewTxManagerGorm(gormDB),
		close:     func() { _ = sqlDB.Close() },
	}, nil
}
