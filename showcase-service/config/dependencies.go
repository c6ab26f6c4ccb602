package config

import (
	"context"
	"io"

	"github.com/draftea/feature-showcase/shared/events"
	sharedinfra "github.com/draftea/feature-showcase/shared/infrastructure"
	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/draftea/feature-showcase/showcase-service/application"
	"github.com/draftea/feature-showcase/showcase-service/handlers"
	"github.com/draftea/feature-showcase/showcase-service/infrastructure"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type Dependencies struct {
	// Database
	DB *sqlx.DB

	// Repositories
	PaymentRepository *infrastructure.SQLPaymentRepository

	// Use Cases
	DescribePayment *application.DescribePayment
	RecordPayment   *application.RecordPayment
	GetPayment      *application.GetPayment
	MeasureShapes   *application.MeasureShapes
	DescribeStaff   *application.DescribeStaff

	// HTTP Handlers
	PaymentHandlers *handlers.PaymentHandlers
	CatalogHandlers *handlers.CatalogHandlers

	// Event Handlers
	PaymentEventHandlers *handlers.PaymentEventHandlers

	// Infrastructure
	EventPublisher  events.Publisher
	EventSubscriber events.Subscriber

	// Telemetry
	Telemetry         *telemetry.Telemetry
	TelemetryShutdown func()
}

func BuildDependencies(ctx context.Context, config *Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// Initialize telemetry first
	if config.Telemetry.Enabled {
		telConfig := telemetry.ShowcaseServiceConfig.WithOTLPEndpoint(config.Telemetry.OTLPEndpoint)
		tel, telemetryShutdown, err := telemetry.InitTelemetry(ctx, telConfig)
		if err != nil {
			// Continue without telemetry rather than failing
			logger.Warn("failed to initialize telemetry", zap.Error(err))
		} else {
			deps.Telemetry = tel
			deps.TelemetryShutdown = telemetryShutdown
		}
	}

	// Initialize database
	db, err := sqlx.Connect(config.Database.Driver, config.GetDatabaseURL())
	if err != nil {
		deps.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if config.Database.Driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	deps.DB = db

	// Initialize repositories
	deps.PaymentRepository = infrastructure.NewSQLPaymentRepository(db)
	if err := deps.PaymentRepository.EnsureSchema(ctx); err != nil {
		deps.Close()
		return nil, err
	}

	// Initialize event infrastructure
	if err := deps.buildEvents(ctx, config, logger); err != nil {
		deps.Close()
		return nil, err
	}

	// Initialize use cases
	deps.DescribePayment = application.NewDescribePayment()
	deps.RecordPayment = application.NewRecordPayment(deps.PaymentRepository, deps.EventPublisher)
	deps.GetPayment = application.NewGetPayment(deps.PaymentRepository)
	deps.MeasureShapes = application.NewMeasureShapes()
	deps.DescribeStaff = application.NewDescribeStaff()

	// Initialize handlers
	deps.PaymentHandlers = handlers.NewPaymentHandlers(deps.DescribePayment, deps.RecordPayment, deps.GetPayment, logger)
	deps.CatalogHandlers = handlers.NewCatalogHandlers(deps.MeasureShapes, deps.DescribeStaff, logger)
	deps.PaymentEventHandlers = handlers.NewPaymentEventHandlers(logger)

	return deps, nil
}

func (d *Dependencies) buildEvents(ctx context.Context, config *Config, logger *zap.Logger) error {
	switch config.Events.Driver {
	case EventsAWS:
		publisher, err := sharedinfra.NewSNSPublisherAdapter(ctx, config.AWS.SNSTopicArn, sharedinfra.AWSOptions{
			Region:   config.AWS.Region,
			Endpoint: config.AWS.EndpointSNS,
		}, logger)
		if err != nil {
			return errors.Wrap(err, "failed to create SNS publisher")
		}
		d.EventPublisher = publisher
		d.EventSubscriber = sharedinfra.NewSQSSubscriberAdapter(config.AWS.SQSQueueURL, sharedinfra.AWSOptions{
			Region:   config.AWS.Region,
			Endpoint: config.AWS.EndpointSQS,
		}, logger)
	default:
		bus := sharedinfra.NewMemoryEventBus(config.Events.BufferSize, logger)
		d.EventPublisher = bus
		d.EventSubscriber = bus
	}
	return nil
}

// Close closes all dependencies
func (d *Dependencies) Close() error {
	var errs []error

	// Subscriber first so in-flight events still reach a live database
	if closer, ok := d.EventSubscriber.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event subscriber"))
		}
	}

	if closer, ok := d.EventPublisher.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close event publisher"))
		}
	}

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "failed to close database"))
		}
	}

	if d.TelemetryShutdown != nil {
		d.TelemetryShutdown()
	}

	if len(errs) > 0 {
		return errors.Errorf("errors closing dependencies: %v", errs)
	}

	return nil
}
