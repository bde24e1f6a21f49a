package aws

import (
	"context"
	"fmt"
	"log"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSConsumer polls an SQS queue and hands message bodies to a handler.
// The retouching workers report finished jobs through such a queue.
type SQSConsumer struct {
	client   *sqs.Client
	queueURL string
}

func NewSQSConsumer(cfg sdkaws.Config, queueURL string) *SQSConsumer {
	return &SQSConsumer{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}
}

// MessageHandler processes a single SQS message body.
type MessageHandler func(ctx context.Context, body string) error

// StartPolling polls SQS for messages and processes them with the handler.
// Runs until the context is cancelled.
func (c *SQSConsumer) StartPolling(ctx context.Context, handler MessageHandler) error {
	log.Printf("Starting SQS polling on queue: %s", c.queueURL)

	for {
		select {
		case <-ctx.Done():
			log.Println("SQS polling stopped")
			return ctx.Err()
		default:
			if err := c.pollOnce(ctx, handler); err != nil {
				log.Printf("Error polling SQS: %v", err)
			}
		}
	}
}

func (c *SQSConsumer) pollOnce(ctx context.Context, handler MessageHandler) error {
	result, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            &c.queueURL,
		MaxNumberOfMessages: 10,
		WaitTimeSeconds:     20, // Long polling
		VisibilityTimeout:   30,
	})
	if err != nil {
		return fmt.Errorf("failed to receive messages: %w", err)
	}

	for _, msg := range result.Messages {
		if msg.Body == nil {
			continue
		}

		if err := handler(ctx, *msg.Body); err != nil {
			log.Printf("Failed to process message: %v", err)
			// Message becomes visible again after VisibilityTimeout
			continue
		}

		if _, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      &c.queueURL,
			ReceiptHandle: msg.ReceiptHandle,
		}); err != nil {
			log.Printf("Failed to delete message: %v", err)
		}
	}

	return nil
}

// GetQueueURL retrieves the URL for a queue name.
func GetQueueURL(ctx context.Context, cfg sdkaws.Config, queueName string) (string, error) {
	client := sqs.NewFromConfig(cfg)
	result, err := client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: &queueName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get queue URL: %w", err)
	}
	return *result.QueueUrl, nil
}
