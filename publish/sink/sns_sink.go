package sink

import (
	"encoding/json"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sns"
	Logger "github.com/seoforge/seoforge/utils/log"
)

type SnsSink struct {
	arn    string
	client *sns.SNS
}

func NewSnsSink() (*SnsSink, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		return nil, err
	}

	return &SnsSink{
		arn:    os.Getenv("PUBLISH_EVENTS_SNS_ARN"),
		client: sns.New(sess),
	}, nil
}

func (s *SnsSink) Push(event *PublishEvent) error {
	if event == nil {
		Logger.Log.Warn("push empty publish event into queue")
		return nil
	}
	serialized, err := json.Marshal(event)
	if err != nil {
		return err
	}
	message := string(serialized)
	messageGroup := "publish_events"
	dedupId := event.PostID + "_" + string(event.Status)
	// ignore the returned seq number for FIFO
	_, err = s.client.Publish(&sns.PublishInput{
		Message:                &message,
		TopicArn:               &s.arn,
		MessageGroupId:         &messageGroup,
		MessageDeduplicationId: &dedupId,
	})
	return err
}
