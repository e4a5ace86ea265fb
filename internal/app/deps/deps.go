package deps

import (
	"context"
	"fmt"
	"rewatch/internal/config"
	"rewatch/internal/core/domain/handoff"
	dl "rewatch/internal/core/domain/logging"
	dm "rewatch/internal/core/domain/metrics"
	"rewatch/internal/core/domain/notification"
	drl "rewatch/internal/core/domain/rate_limiter"
	"rewatch/internal/core/domain/reminder"
	"rewatch/internal/core/domain/timer"
	"rewatch/internal/db"
	"rewatch/internal/db/document"
	dbnotification "rewatch/internal/db/notification"
	dbreminder "rewatch/internal/db/reminder"
	autoclearer "rewatch/internal/implementations/auto_clearer"
	desktopnotifier "rewatch/internal/implementations/desktop_notifier"
	handoffstore "rewatch/internal/implementations/handoff_store"
	idgenerator "rewatch/internal/implementations/id_generator"
	localtimer "rewatch/internal/implementations/local_timer"
	"rewatch/internal/implementations/logging"
	"rewatch/internal/implementations/metrics"
	ratelimiter "rewatch/internal/implementations/rate_limiter"
	tabopener "rewatch/internal/implementations/tab_opener"
	timerregistry "rewatch/internal/implementations/timer_registry"
	"rewatch/internal/rabbitmq"
	timerfired "rewatch/internal/rabbitmq/consumers/timer_fired"
	delayedtimer "rewatch/internal/rabbitmq/publishers/delayed_timer"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/r3labs/sse/v2"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server
	Registry  *prometheus.Registry

	Now func() time.Time

	ReminderRepository  reminder.Repository
	ReminderIDGenerator reminder.IDGenerator
	NotificationIDs     *dbnotification.ServerIDs

	Timer        timer.Timer
	TimerWakeups timer.Wakeups

	Notifier           notification.Notifier
	NotificationClicks <-chan notification.ID
	AutoClearer        notification.AutoClearer
	TabOpener          notification.TabOpener

	HandoffStore    handoff.Store
	MetricsRecorder dm.Recorder
	RateLimiter     drl.RateLimiter
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	flushSentry := deps.initSentry()

	deps.Now = func() time.Time { return time.Now().UTC() }

	closeRedisClient := deps.initRedisClient()
	closeStore := deps.initReminderStore()
	closeSseServer := deps.initSseServer()
	closeTimer := deps.initTimer()
	closeNotifier := deps.initNotifier()

	deps.ReminderIDGenerator = idgenerator.NewGenerator()
	deps.TabOpener = tabopener.NewSSE(deps.SseServer, tabopener.DefaultStream)
	deps.initHandoffStore()
	deps.initRateLimiter()
	deps.initMetrics()

	return deps, func() {
		// Timers and notifications stop first, they still use the store.
		closeTimer()
		closeNotifier()

		closeFuncs := []func(){
			closeSseServer,
			closeStore,
			closeRedisClient,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		flushSentry()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.Debug)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDSN,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger = logging.WithSentry(deps.Logger, sentry.CurrentHub())
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}

func (deps *Deps) initRedisClient() func() {
	if deps.Config.RedisURL == "" {
		deps.Logger.Info(context.Background(), "Redis is not configured.")
		return func() {}
	}
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initReminderStore() func() {
	ctx := context.Background()

	switch deps.Config.StoreDriver {
	case config.StoreDriverPostgres:
		if err := db.ApplyMigrations(deps.Config.MigrationsPath, deps.Config.PostgresqlURL); err != nil {
			deps.Logger.Error(ctx, "Could not apply migrations.", dl.Entry("err", err))
			panic(err)
		}
		pool, err := pgxpool.Connect(ctx, deps.Config.PostgresqlURL)
		if err != nil {
			deps.Logger.Error(ctx, "Could not connect to DB.", dl.Entry("err", err))
			panic(err)
		}
		deps.DB = pool
		doc, err := document.NewPostgres(ctx, pool, document.DefaultKey)
		if err != nil {
			deps.Logger.Error(ctx, "Could not prepare reminder document.", dl.Entry("err", err))
			panic(err)
		}
		deps.ReminderRepository = dbreminder.New(doc)
		notificationDoc, err := document.NewPostgres(ctx, pool, dbnotification.DocumentKey)
		if err != nil {
			deps.Logger.Error(ctx, "Could not prepare notification document.", dl.Entry("err", err))
			panic(err)
		}
		deps.NotificationIDs = dbnotification.New(notificationDoc)
		deps.Logger.Info(ctx, "Reminder store is ready.", dl.Entry("driver", deps.Config.StoreDriver))
		return func() {
			deps.Logger.Info(ctx, "Shutting down DB connection.")
			pool.Close()
			deps.Logger.Info(ctx, "DB connection shut down.")
		}
	default:
		doc, err := document.OpenSqlite(ctx, deps.Config.SqlitePath, document.DefaultKey)
		if err != nil {
			deps.Logger.Error(ctx, "Could not open SQLite store.", dl.Entry("err", err))
			panic(err)
		}
		deps.ReminderRepository = dbreminder.New(doc)
		notificationDoc, err := doc.Sibling(ctx, dbnotification.DocumentKey)
		if err != nil {
			deps.Logger.Error(ctx, "Could not prepare notification document.", dl.Entry("err", err))
			panic(err)
		}
		deps.NotificationIDs = dbnotification.New(notificationDoc)
		deps.Logger.Info(
			ctx,
			"Reminder store is ready.",
			dl.Entry("driver", deps.Config.StoreDriver),
			dl.Entry("path", deps.Config.SqlitePath),
		)
		return func() {
			deps.Logger.Info(ctx, "Closing SQLite store.")
			doc.Close()
			deps.Logger.Info(ctx, "SQLite store closed.")
		}
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

func (deps *Deps) initTimer() func() {
	if deps.Config.TimerBackend == config.TimerBackendRabbitmq {
		return deps.initRabbitmqTimer()
	}

	localTimer := localtimer.New(deps.Logger, deps.Now)
	deps.Timer = localTimer
	deps.TimerWakeups = localTimer
	deps.Logger.Info(context.Background(), "Local timers are ready.")
	return func() {
		localTimer.Stop()
		deps.Logger.Info(context.Background(), "Local timers stopped.")
	}
}

func (deps *Deps) initRabbitmqTimer() func() {
	ctx, cancel := context.WithCancel(context.Background())

	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(ctx, "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection

	exchange := deps.Config.RabbitmqDelayedExchange
	queue := deps.Config.RabbitmqTimerQueue

	publishChannel, err := rabbitmqConnection.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	if err := publishChannel.DeclareDelayedQueue(exchange, queue); err != nil {
		deps.Logger.Error(ctx, "Could not declare RabbitMQ timer queue.", dl.Entry("err", err))
		panic(err)
	}

	registry := timerregistry.NewRedis(deps.Redis, timerregistry.DefaultKey)
	deps.Timer = delayedtimer.NewRabbitMQ(deps.Logger, publishChannel, registry, exchange, queue, deps.Now)

	consumeChannel, err := rabbitmqConnection.Channel()
	if err != nil {
		deps.Logger.Error(ctx, "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	consumer := timerfired.New(deps.Logger, consumeChannel, queue, registry)
	if err := consumer.Consume(ctx); err != nil {
		deps.Logger.Error(ctx, "Could not start RabbitMQ consuming.", dl.Entry("err", err), dl.Entry("queue", queue))
		panic(err)
	}
	deps.TimerWakeups = consumer
	deps.Logger.Info(ctx, "Consumer has started.", dl.Entry("queue", queue))

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		cancel()
		consumeChannel.Close()
		publishChannel.Close()
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initNotifier() func() {
	ctx := context.Background()

	dbusNotifier, err := desktopnotifier.Connect(
		ctx,
		deps.Logger,
		deps.Config.NotificationAppName,
		deps.NotificationIDs,
	)
	if err != nil {
		deps.Logger.Warning(ctx, "Desktop notifications are unavailable.", dl.Entry("err", err))
		deps.Notifier = desktopnotifier.Unavailable{}
		deps.AutoClearer = autoclearer.New(deps.Logger, deps.Notifier)
		return func() {}
	}

	deps.Notifier = dbusNotifier
	deps.NotificationClicks = dbusNotifier.Clicks()
	clearer := autoclearer.New(deps.Logger, dbusNotifier)
	deps.AutoClearer = clearer
	deps.Logger.Info(ctx, "Desktop notifications are ready.")
	return func() {
		clearer.Stop()
		dbusNotifier.Close()
		deps.Logger.Info(ctx, "Desktop notifications closed.")
	}
}

func (deps *Deps) initHandoffStore() {
	if deps.Redis != nil {
		deps.HandoffStore = handoffstore.NewRedis(deps.Redis, handoffstore.DefaultKey)
		return
	}
	deps.HandoffStore = handoffstore.NewMemory(deps.Now)
}

func (deps *Deps) initRateLimiter() {
	if deps.Redis != nil {
		deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
		return
	}
	deps.RateLimiter = ratelimiter.NewMemory(deps.Now)
}

func (deps *Deps) initMetrics() {
	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.MetricsRecorder = metrics.NewPrometheus(deps.Registry)
}
