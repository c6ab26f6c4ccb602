package infrastructure

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/draftea/feature-showcase/shared/events"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ events.Subscriber = (*SQSSubscriberAdapter)(nil)

// SQSSubscriberAdapter creates the SQS client lazily on Subscribe
type SQSSubscriberAdapter struct {
	queueURL string
	opts     AWSOptions
	logger   *zap.Logger

	mux        sync.Mutex
	subscriber *SQSEventSubscriber
}

// NewSQSSubscriberAdapter creates a new SQS subscriber adapter
func NewSQSSubscriberAdapter(queueURL string, opts AWSOptions, logger *zap.Logger) *SQSSubscriberAdapter {
	return &SQSSubscriberAdapter{
		queueURL: queueURL,
		opts:     opts,
		logger:   logger,
	}
}

// Subscribe implements events.Subscriber interface
func (s *SQSSubscriberAdapter) Subscribe(ctx context.Context, eventType string, handler events.EventHandler) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.subscriber != nil {
		return errors.New("subscriber is already running")
	}

	cfg, err := loadAWSConfig(ctx, s.opts)
	if err != nil {
		return err
	}

	client := sqs.NewFromConfig(cfg, func(o *sqs.Options) {
		if s.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.opts.Endpoint)
		}
	})

	subscriber := NewSQSEventSubscriber(client, s.queueURL, events.Topic(eventType), handler, s.logger)
	if err := subscriber.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start SQS subscriber")
	}

	s.subscriber = subscriber
	return nil
}

// Close stops the subscriber
func (s *SQSSubscriberAdapter) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.subscriber != nil {
		s.subscriber.Stop()
		s.subscriber = nil
	}
	return nil
}
