package sqsgath

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

func NewSqsResultGatherer(runUuid string, queueUrl string) *sqsResultGatherer {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion("eu-central-1"))
	if err != nil {
		panic(fmt.Sprintf("unable to load SDK config, %v", err))
	}

	return &sqsResultGatherer{
		sqsClient: sqs.NewFromConfig(cfg),
		queueUrl:  queueUrl,
		runUuid:   runUuid,
	}
}
