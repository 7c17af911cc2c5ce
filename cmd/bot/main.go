package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/phalabot/internal/captcha"
	"github.com/KirkDiggler/phalabot/internal/chart"
	"github.com/KirkDiggler/phalabot/internal/clients/subscan"
	"github.com/KirkDiggler/phalabot/internal/common/clock"
	"github.com/KirkDiggler/phalabot/internal/common/uuid"
	"github.com/KirkDiggler/phalabot/internal/config"
	"github.com/KirkDiggler/phalabot/internal/events"
	"github.com/KirkDiggler/phalabot/internal/gateway"
	"github.com/KirkDiggler/phalabot/internal/handlers/discord"
	statusHTTP "github.com/KirkDiggler/phalabot/internal/handlers/http"
	"github.com/KirkDiggler/phalabot/internal/repositories/price_report"
	"github.com/KirkDiggler/phalabot/internal/repositories/verification_session"
	priceService "github.com/KirkDiggler/phalabot/internal/services/price"
	verificationService "github.com/KirkDiggler/phalabot/internal/services/verification"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	envFile string
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "phalabot",
	Short: "Discord bot for member verification and PHA price statistics",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return run(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to a .env file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Initialize repositories
	sessionRepo, err := verification_session.NewRedis(&verification_session.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create session repository: %w", err)
	}

	reportRepo, err := price_report.NewRedis(&price_report.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create price report repository: %w", err)
	}

	// Verification events go out over a Redis stream
	streamPublisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{
			Client: redisClient,
		},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return fmt.Errorf("failed to create Redis publisher: %w", err)
	}
	defer streamPublisher.Close()

	eventPublisher, err := events.NewWatermillPublisher(&events.Config{
		Publisher: streamPublisher,
		Topic:     cfg.EventsTopic,
	})
	if err != nil {
		return err
	}

	// Discord session shared by the gateway and the bot
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	clk := clock.New()
	waiters := gateway.NewWaiters(clk)

	discordGateway, err := gateway.NewDiscord(&gateway.DiscordConfig{
		Session: session,
		GuildID: cfg.GuildID,
		Waiters: waiters,
	})
	if err != nil {
		return err
	}

	verificationSvc, err := verificationService.New(&verificationService.Config{
		VerifiedRoleName: cfg.VerifiedRole,
		ChallengeTimeout: cfg.ChallengeTimeout,
		Gateway:          discordGateway,
		Generator:        captcha.New(&captcha.Config{}),
		Clock:            clk,
		UUIDGenerator:    uuid.New(),
		SessionRepo:      sessionRepo,
		Publisher:        eventPublisher,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create verification service: %w", err)
	}

	subscanClient, err := subscan.New(&subscan.Config{
		BaseURL: cfg.SubscanURL,
		APIKey:  cfg.SubscanAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create subscan client: %w", err)
	}

	priceSvc, err := priceService.New(&priceService.Config{
		HistoryDays:     cfg.PriceHistoryDays,
		RefreshInterval: cfg.PriceRefreshInterval,
		Client:          subscanClient,
		Renderer:        chart.New(&chart.Config{}),
		ReportRepo:      reportRepo,
		Clock:           clk,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create price service: %w", err)
	}

	// Commands
	authorizer, err := discord.NewAuthorizer(&discord.AuthorizerConfig{
		CommandsChannelID: cfg.BotCommandsChannelID,
		Verification:      verificationSvc,
	})
	if err != nil {
		return err
	}

	dispatcher, err := discord.NewDispatcher(&discord.DispatcherConfig{
		Prefix:  cfg.CommandPrefix,
		Gateway: discordGateway,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if err := dispatcher.Register(discord.NewVerifyCommand(verificationSvc, authorizer)); err != nil {
		return err
	}
	if err := dispatcher.Register(discord.NewCheckPriceCommand(priceSvc, discordGateway, authorizer, cfg.VerifiedRole)); err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Session:          session,
		GuildID:          cfg.GuildID,
		GeneralChannelID: cfg.GeneralChannelID,
		VerifiedRoleName: cfg.VerifiedRole,
		Gateway:          discordGateway,
		Waiters:          waiters,
		Dispatcher:       dispatcher,
		Verification:     verificationSvc,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return priceSvc.Run(ctx)
	})

	g.Go(func() error {
		if err := bot.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		logger.Info("shutting down bot")

		return bot.Stop()
	})

	if cfg.StatusAddr != "" {
		gin.SetMode(gin.ReleaseMode)

		router, err := statusHTTP.SetupRouter(&statusHTTP.RouterConfig{
			SessionRepo:  sessionRepo,
			PriceService: priceSvc,
			Clock:        clk,
			Logger:       logger,
		})
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:    cfg.StatusAddr,
			Handler: router,
		}

		g.Go(func() error {
			logger.Info("status server listening", zap.String("addr", cfg.StatusAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		g.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			return server.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
