package app

import (
	"context"
	"database/sql"

	"github.com/aq2208/oms-api/configs"
	"github.com/aq2208/oms-api/internal/adapter/cache"
	"github.com/aq2208/oms-api/internal/adapter/http"
	"github.com/aq2208/oms-api/internal/adapter/queue"
	"github.com/aq2208/oms-api/internal/adapter/repo"
	"github.com/aq2208/oms-api/internal/logging"
	"github.com/aq2208/oms-api/internal/usecase"
	"github.com/aq2208/oms-api/internal/worker"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	// init logger
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	l := logging.New("bootstrap")
	l.Info("oms-api: starting up")

	// init database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ReadTimeout)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// init rabbitmq producer
	conn, err := amqp091.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}
	producer, err := queue.NewRabbitProducer(ch, cfg.Rabbit.Exchange)
	if err != nil {
		return nil, nil, err
	}

	// infra
	customerRepo := repo.NewMySQLCustomerRepo(db)
	productRepo := repo.NewMySQLProductRepo(db)
	orderRepo := repo.NewMySQLOrderRepo(db)
	outboxRepo := repo.NewMySQLOutboxRepo(db)
	orderCache := cache.NewRedisOrderCache(rdb, cfg.Cache.TTL)
	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)

	// outbox relay: drains staged order events to the broker
	relay := worker.NewOutboxRelay(outboxRepo, producer, logging.New("outbox-relay"),
		cfg.Outbox.Interval, cfg.Outbox.BatchSize)
	relayCtx, stopRelay := context.WithCancel(context.Background())
	go relay.Run(relayCtx)

	// init usecases + handlers + router
	createUC := usecase.NewCreateOrder(orderRepo, customerRepo, productRepo, idem)
	updateUC := usecase.NewUpdateOrder(orderRepo, customerRepo, productRepo, orderCache)
	deleteUC := usecase.NewDeleteOrder(orderRepo, orderCache)
	deleteCustomerUC := usecase.NewDeleteCustomer(customerRepo, orderRepo, orderCache)
	deleteProductUC := usecase.NewDeleteProduct(productRepo, orderRepo, orderCache)

	ch1 := http.NewCustomerHandler(customerRepo, deleteCustomerUC)
	ph := http.NewProductHandler(productRepo, deleteProductUC)
	oh := http.NewOrderHandler(createUC, updateUC, deleteUC, orderRepo, orderCache)
	router := http.NewRouter(ch1, ph, oh)

	cleanup := func() {
		stopRelay()
		_ = ch.Close()
		_ = conn.Close()
		_ = db.Close()
		_ = rdb.Close()
	}

	return &App{Router: router}, cleanup, nil
}
