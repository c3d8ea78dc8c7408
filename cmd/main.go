package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"shortfeed/resolver-service/internal/cache"
	"shortfeed/resolver-service/internal/catalog"
	"shortfeed/resolver-service/internal/config"
	"shortfeed/resolver-service/internal/extractor"
	"shortfeed/resolver-service/internal/pipeline"
)

func main() {
	// 1. 初始化日志
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 2. 加载环境变量(.env不存在时静默跳过)
	_ = godotenv.Load()

	// 优雅退出: 取消ctx会传导到在途的提取进程
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "resolver",
		Usage: "resolve short-video references into playable records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config/dev.yaml",
				Usage: "load configuration from `FILE`",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "resolve",
				Usage:     "resolve one or more video URLs/ids and print records as JSON",
				ArgsUsage: "URL...",
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return fmt.Errorf("at least one URL is required")
					}
					p, cleanup, err := buildPipeline(c.String("config"), logger)
					if err != nil {
						return err
					}
					defer cleanup()

					records := p.ResolveBatch(ctx, c.Args().Slice())
					return printJSON(records)
				},
			},
			{
				Name:  "feed",
				Usage: "print the curated sample feed as JSON",
				Action: func(c *cli.Context) error {
					p, cleanup, err := buildPipeline(c.String("config"), logger)
					if err != nil {
						return err
					}
					defer cleanup()

					return printJSON(p.SampleFeed())
				},
			},
		},
		HideHelpCommand: true,
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

// buildPipeline 按配置组装解析管线
func buildPipeline(configPath string, logger *zap.Logger) (*pipeline.Pipeline, func(), error) {
	// 3. 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cleanup := func() {}
	opts := []pipeline.Option{}

	// 4. 可选的Redis记忆化缓存: 连接失败只降级，不阻止解析
	if cfg.Cache.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Failed to connect to Redis, cache disabled", zap.Error(err))
			redisClient.Close()
		} else {
			logger.Info("✓ Connected to Redis")
			opts = append(opts, pipeline.WithCache(cache.NewService(redisClient, cfg.Cache.GetCacheTTL())))
			cleanup = func() { redisClient.Close() }
		}
	}

	// 5. 组装管线: 预置目录 + 外部提取进程客户端
	client := extractor.NewClient(&cfg.Extractor, logger)
	p := pipeline.New(cfg, catalog.Default(), client, logger, opts...)

	return p, cleanup, nil
}

// printJSON 输出JSON到stdout
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
