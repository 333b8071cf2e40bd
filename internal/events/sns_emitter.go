package events

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/paulasielawa/Serverless-Event-driven-AI-Notifier/internal/logging"
)

type snsPublisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSEmitter publishes to Amazon SNS; destinations are topic ARNs.
type SNSEmitter struct {
	client snsPublisher
	logger logging.Logger
}

// NewSNSEmitter uses the default AWS credential chain. An empty region
// leaves region resolution to the environment.
func NewSNSEmitter(ctx context.Context, region string, logger logging.Logger) (*SNSEmitter, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sns: load aws config: %w", err)
	}
	return newSNSEmitter(sns.NewFromConfig(awsCfg), logger), nil
}

func newSNSEmitter(client snsPublisher, logger logging.Logger) *SNSEmitter {
	return &SNSEmitter{client: client, logger: logging.OrNop(logger)}
}

func (e *SNSEmitter) Emit(ctx context.Context, topicARN string, n Notification) error {
	b, err := n.Body()
	if err != nil {
		return err
	}

	attrs := make(map[string]types.MessageAttributeValue)
	for k, v := range n.Attributes() {
		if k == "subject" {
			continue
		}
		attrs[k] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(v),
		}
	}

	out, err := e.client.Publish(ctx, &sns.PublishInput{
		TopicArn:          aws.String(topicARN),
		Message:           aws.String(string(b)),
		Subject:           aws.String(n.Subject),
		MessageAttributes: attrs,
	})
	if err != nil {
		return fmt.Errorf("sns: publish to %s: %w", topicARN, err)
	}

	e.logger.WithFields(logging.Fields{
		"topic_arn":     topicARN,
		"message_id":    aws.ToString(out.MessageId),
		"invocation_id": n.ID,
	}).Debug("Published notification to SNS")
	return nil
}

func (e *SNSEmitter) Close() error {
	return nil
}
