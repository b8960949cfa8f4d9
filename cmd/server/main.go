package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"docflow/internal/document"
	"docflow/internal/hooks"
	"docflow/internal/mail"
	"docflow/internal/notice"
	noticestore "docflow/internal/notice/store"
	"docflow/internal/platform/config"
	"docflow/internal/platform/httpserver"
	"docflow/internal/platform/logger"
	"docflow/internal/platform/metrics"
	"docflow/internal/platform/redis"
	"docflow/internal/request"
	"docflow/internal/rules"
	"docflow/internal/scheduler"
	"docflow/internal/store"
	httptransport "docflow/internal/transport/http"
)

// main wires dependencies, serves HTTP and runs the partner notice schedule
// until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("docflow stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	gateway, closeGateway, err := mailGateway(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closeGateway()
	sink, err := mail.NewSink(gateway, mail.WithLogger(log))
	if err != nil {
		return err
	}

	cardStore := store.NewPostgres()

	// Cross-tier requests.
	router := request.NewRouter(request.WithLogger(log), request.WithMetrics(m))
	router.Handle(request.GetUserDepartmentInfoRequestTypeID, "get_user_department_info",
		request.GetUserDepartmentInfo(cardStore, db, log))

	// Document storage hooks.
	loader, err := rules.NewLoader(cardStore)
	if err != nil {
		return err
	}
	vacation, err := hooks.NewVacationStoreExtension(loader, rules.NewEvaluator(rules.WithMetrics(m)),
		hooks.WithVacationLogger(log))
	if err != nil {
		return err
	}
	pipeline, err := hooks.NewPipeline(hooks.SQLBeginner{DB: db}, hooks.WithPipelineLogger(log))
	if err != nil {
		return err
	}
	pipeline.Register(document.VacationRequestTypeID, vacation)

	// Partner notice job.
	job, err := noticeJob(cfg.Notice, db, redisClient, sink, log, m)
	if err != nil {
		return err
	}
	hour, minute, _ := cfg.Notice.StartClock()
	loc, _ := time.LoadLocation(cfg.Notice.Location)
	sched, err := scheduler.New[*notice.Report](job,
		scheduler.WithStartAt(hour, minute, loc),
		scheduler.WithInterval(cfg.Notice.Interval),
		scheduler.WithLogger(log),
	)
	if err != nil {
		return err
	}

	health := map[string]httptransport.HealthCheck{"postgres": db.PingContext}
	if redisClient != nil {
		health["redis"] = redisClient.Health
	}
	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(httptransport.Dependencies{
		Logger:    log,
		Gatherer:  reg,
		Requests:  request.NewHandler(router, log),
		Documents: hooks.NewStoreHandler(pipeline, document.WorkflowSchema, log),
		Notice:    sched,
		Health:    health,
	}))

	log.Info("starting docflow", "addr", cfg.Server.Addr, "environment", cfg.Environment)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Serve(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	g.Go(func() error {
		return sched.Run(gctx)
	})
	return g.Wait()
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func mailGateway(cfg config.KafkaConfig, log *slog.Logger) (mail.Gateway, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("no kafka brokers configured, mail is only logged")
		return mail.NewLogGateway(log), func() {}, nil
	}
	client, err := mail.NewKafkaClient(cfg.Brokers, cfg.MailTopic)
	if err != nil {
		return nil, nil, err
	}
	gateway, err := mail.NewKafkaGateway(client, cfg.MailTopic)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return gateway, client.Close, nil
}

func noticeJob(cfg config.NoticeConfig, db *sql.DB, redisClient *redis.Client, sink *mail.Sink, log *slog.Logger, m *metrics.Metrics) (*notice.Job, error) {
	offsets, err := cfg.ParsedOffsets()
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Location)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("NOTICE_LANGUAGE: %w", err)
	}

	var deduper notice.Deduper = notice.NewMemoryDeduper()
	if redisClient != nil {
		deduper = noticestore.NewRedisDeduper(redisClient.Client, "docflow:")
	}

	job, err := notice.New(notice.DBScope{DB: db}, noticestore.NewPostgres(), sink,
		notice.WithDeduper(deduper),
		notice.WithOffsets(offsets...),
		notice.WithDedupeTTL(cfg.DedupeTTL),
		notice.WithLocation(loc),
		notice.WithLanguage(tag),
		notice.WithLogger(log),
		notice.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("build partner notice job: %w", err)
	}
	return job, nil
}
