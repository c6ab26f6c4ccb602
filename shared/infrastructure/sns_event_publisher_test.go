package infrastructure

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/draftea/feature-showcase/shared/events"
	"github.com/draftea/feature-showcase/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	mux     sync.Mutex
	inputs  []*sns.PublishBatchInput
	failIDs map[string]bool
	err     error
}

func (f *fakeSNS) PublishBatch(_ context.Context, params *sns.PublishBatchInput, _ ...func(*sns.Options)) (*sns.PublishBatchOutput, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)

	out := &sns.PublishBatchOutput{}
	for _, entry := range params.PublishBatchRequestEntries {
		if f.failIDs[aws.ToString(entry.Id)] {
			out.Failed = append(out.Failed, types.BatchResultErrorEntry{
				Id:      entry.Id,
				Code:    aws.String("InternalError"),
				Message: aws.String("boom"),
			})
		}
	}
	return out, nil
}

func newTestEvents(n int) []*events.Event {
	evts := make([]*events.Event, n)
	for i := range evts {
		evts[i] = events.NewEvent(models.GenerateUUID(), events.PaymentRecordedEvent, map[string]int{"index": i}).
			WithMetadata("source", "test")
	}
	return evts
}

func TestSNSEventPublisher_Publish(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn:aws:sns:us-east-1:000000000000:showcase-events", nil)

	require.NoError(t, publisher.Publish(context.Background(), newTestEvents(23)...))

	require.Len(t, client.inputs, 3)
	total := 0
	for _, input := range client.inputs {
		assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:showcase-events", aws.ToString(input.TopicArn))
		assert.LessOrEqual(t, len(input.PublishBatchRequestEntries), maxBatchSize)
		total += len(input.PublishBatchRequestEntries)
	}
	assert.Equal(t, 23, total)

	entry := client.inputs[0].PublishBatchRequestEntries[0]
	assert.Equal(t, events.PaymentRecordedEvent, aws.ToString(entry.MessageAttributes["topic"].StringValue))
	assert.Equal(t, "test", aws.ToString(entry.MessageAttributes["source"].StringValue))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Message)), &decoded))
	assert.Equal(t, events.PaymentRecordedEvent, decoded["topic"])
	assert.Contains(t, decoded["data"], "index")
}

func TestSNSEventPublisher_NoEvents(t *testing.T) {
	client := &fakeSNS{}
	publisher := NewSNSEventPublisher(client, "arn", nil)

	require.NoError(t, publisher.Publish(context.Background()))
	assert.Empty(t, client.inputs)
}

func TestSNSEventPublisher_Errors(t *testing.T) {
	t.Run("client error", func(t *testing.T) {
		publisher := NewSNSEventPublisher(&fakeSNS{err: errors.New("throttled")}, "arn", nil)

		err := publisher.Publish(context.Background(), newTestEvents(1)...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish batch to SNS")
	})

	t.Run("rejected entries", func(t *testing.T) {
		evts := newTestEvents(2)
		client := &fakeSNS{failIDs: map[string]bool{evts[1].ID.String(): true}}
		publisher := NewSNSEventPublisher(client, "arn", nil)

		err := publisher.Publish(context.Background(), evts...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 events rejected")
	})
}

func TestSplitToChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, splitToChunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Nil(t, splitToChunks([]int{}, 2))
}
