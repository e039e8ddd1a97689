package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"aevum/config"
	"aevum/internal/delivery"
	"aevum/internal/delivery/http"
	"aevum/internal/delivery/http/middleware"
	"aevum/internal/delivery/http/router/handler"
	"aevum/internal/domain/service"
	"aevum/internal/infra/auth"
	"aevum/internal/infra/blob"
	"aevum/internal/infra/companion"
	logs "aevum/internal/infra/log"
	"aevum/internal/infra/mail"
	"aevum/internal/infra/notification"
	"aevum/internal/infra/persistence/postgres"
	"aevum/internal/infra/pubsub"
	"aevum/internal/infra/qrcode"
	"aevum/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
			postgres.NewDeviceRepository,
			postgres.NewDNAKitTypeRepository,
			postgres.NewDNAOrderRepository,
			postgres.NewDNAUploadRepository,
			postgres.NewDNAReportRepository,
			postgres.NewJournalRepository,
			postgres.NewCompanionRepository,
			postgres.NewSubscriptionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newNotificationService,
			qrcode.NewQRCodeService,
			mail.NewMailer,
			blob.NewDocumentStore,
			pubsub.NewEventPublisher,
			companion.NewReplyGenerator,
		),
	)
}

// newNotificationService creates the Firebase push service, or a logging
// no-op when Firebase is not configured
func newNotificationService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.NotificationService, error) {
	if cfg.Firebase == nil {
		return notification.NewNoopService(logger), nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewSessionService,
			impl.NewProfileService,
			impl.NewDeviceService,
			impl.NewDNAService,
			impl.NewJournalService,
			impl.NewCompanionService,
			impl.NewSubscriptionService,
			impl.NewDashboardService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewSessionHandler,
			handler.NewProfileHandler,
			handler.NewDeviceHandler,
			handler.NewDNAHandler,
			handler.NewJournalHandler,
			handler.NewCompanionHandler,
			handler.NewSubscriptionHandler,
			handler.NewDashboardHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
