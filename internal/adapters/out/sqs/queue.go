// Package sqs implements the message queue adapter over Amazon SQS.
package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"
	"github.com/bnema/zerowrap"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

const (
	maxWaitSeconds = 20
	maxBatch       = 10
)

var _ out.MessageQueue = (*Queue)(nil)

// API is the subset of the SQS client used here.
type API interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	GetQueueAttributes(ctx context.Context, params *sqs.GetQueueAttributesInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueAttributesOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Queue receives and deletes messages from one SQS queue.
type Queue struct {
	client            API
	url               string
	visibilityTimeout time.Duration
}

// NewQueue creates a Queue bound to an already resolved queue URL.
// A zero visibilityTimeout keeps the queue's default.
func NewQueue(client API, url string, visibilityTimeout time.Duration) *Queue {
	return &Queue{
		client:            client,
		url:               url,
		visibilityTimeout: visibilityTimeout,
	}
}

// NewClient creates an SQS client from an AWS config.
func NewClient(cfg aws.Config) *sqs.Client {
	return sqs.NewFromConfig(cfg)
}

// URL returns the queue URL.
func (q *Queue) URL() string {
	return q.url
}

// ResolveURL looks up a queue URL by name.
func ResolveURL(ctx context.Context, client API, name string) (string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "sqs",
		zerowrap.FieldAction:  "ResolveURL",
		"queue":               name,
	})
	log := zerowrap.FromCtx(ctx)

	res, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err != nil {
		if isQueueMissing(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrQueueNotFound, name)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrQueue, err)
	}

	url := aws.ToString(res.QueueUrl)
	log.Debug().Str("url", url).Msg("queue resolved")
	return url, nil
}

// Check reads the queue's ARN. It fails when the queue is missing or the
// credentials cannot reach it.
func (q *Queue) Check(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "sqs",
		zerowrap.FieldAction:  "Check",
	})
	log := zerowrap.FromCtx(ctx)

	res, err := q.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(q.url),
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameQueueArn},
	})
	if err != nil {
		if isQueueMissing(err) {
			return fmt.Errorf("%w: %s", domain.ErrQueueNotFound, q.url)
		}
		return fmt.Errorf("%w: %w", domain.ErrQueue, err)
	}

	log.Debug().Str("arn", res.Attributes[string(types.QueueAttributeNameQueueArn)]).Msg("queue reachable")
	return nil
}

// Receive long-polls for up to maxMessages messages.
func (q *Queue) Receive(ctx context.Context, maxMessages int, wait time.Duration) ([]domain.Message, error) {
	input := &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.url),
		MaxNumberOfMessages: int32(clamp(maxMessages, 1, maxBatch)),
		WaitTimeSeconds:     int32(clamp(int(wait/time.Second), 0, maxWaitSeconds)),
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{
			types.MessageSystemAttributeNameApproximateReceiveCount,
		},
	}
	if q.visibilityTimeout > 0 {
		input.VisibilityTimeout = int32(q.visibilityTimeout / time.Second)
	}

	res, err := q.client.ReceiveMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrQueue, err)
	}

	msgs := make([]domain.Message, 0, len(res.Messages))
	for _, m := range res.Messages {
		msgs = append(msgs, toMessage(m))
	}
	return msgs, nil
}

// Ack deletes the message from the queue.
func (q *Queue) Ack(ctx context.Context, msg domain.Message) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.url),
		ReceiptHandle: aws.String(msg.ReceiptHandle),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrAck, msg.ID, err)
	}
	return nil
}

func toMessage(m types.Message) domain.Message {
	count, _ := strconv.Atoi(m.Attributes[string(types.MessageSystemAttributeNameApproximateReceiveCount)])
	return domain.Message{
		ID:            aws.ToString(m.MessageId),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
		Body:          []byte(aws.ToString(m.Body)),
		ReceiveCount:  count,
	}
}

func isQueueMissing(err error) bool {
	var notExist *types.QueueDoesNotExist
	if errors.As(err, &notExist) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AWS.SimpleQueueService.NonExistentQueue", "QueueDoesNotExist":
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
