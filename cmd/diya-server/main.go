package main

import (
	"context"
	"diya-backend/internal/application"
	"diya-backend/internal/brandcache"
	"diya-backend/internal/components/chrono"
	"diya-backend/internal/components/telemetry"
	"diya-backend/internal/db"
	"diya-backend/internal/service"
	"diya-backend/lib/configutil"
	"diya-backend/lib/serviceutil"
	libtelemetry "diya-backend/lib/telemetry"
	"flag"
	"log/slog"
	"os"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	configPath := flag.String("config", "config.json5", "Path to the configuration file.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[application.Config](*configPath)
	if os.IsNotExist(err) {
		slog.Warn("no config file found, using defaults", "path", *configPath)
	} else if err != nil {
		serviceutil.Fatal("read config", err)
	}
	cfg, err = application.WithDefaults(cfg)
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	tel := telemetry.SlogAPI{}

	components, err := application.Build(ctx, cfg, tel)
	if err != nil {
		serviceutil.Fatal("init components", err)
	}

	options := []service.Option{service.WithCORSOrigins(cfg.Http.CorsOrigins...)}
	if cfg.Cache.Path != "" {
		cache, err := InitCache(cfg.Cache, components.Time, tel)
		if err != nil {
			serviceutil.Fatal("init cache", err)
		}
		options = append(options, service.WithCache(cache))
	}

	svc := service.NewService(
		components.Extractor,
		components.BrandData,
		components.Generator,
		tel,
		options...,
	)

	err = serviceutil.StartHttpServer(ctx, cfg.Http.Port, svc.Handler())
	if err != nil {
		serviceutil.Fatal("serve http", err)
	}
}

func InitTelemetry(ctx context.Context, verbose bool) {
	libtelemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	otel, err := libtelemetry.SetupFromEnv(ctx, "diya-server")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		otel.Shutdown(context.Background())
	}()

	if otel.MeterProvider != nil {
		libtelemetry.InstrumentPerfStats(ctx, libtelemetry.DEFAULT_PERF_INTERVAL)
	}
}

func InitCache(cfg application.CacheConfig, time chrono.API, tel telemetry.API) (*brandcache.Cache, error) {
	conn, err := db.Open(cfg.Path)
	if err != nil {
		return nil, err
	}
	version, err := db.Version(conn)
	if err != nil {
		return nil, err
	}
	slog.Info("brand cache ready", "path", cfg.Path, "schema_version", version)

	cache := brandcache.NewCache(conn, time, cfg.TTL(), tel)

	cron := chrono.NewStandardCron(time, tel)
	err = cache.SchedulePrune(cron, cfg.PruneCron)
	if err != nil {
		return nil, err
	}
	return cache, nil
}
