// Command ebsreaper-lambda runs a sweep on every invocation, typically
// from an EventBridge schedule.
package main

import (
	"os"

	"github.com/GESkunkworks/ebsreaper"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/inconshreveable/log15"
)

func main() {
	logger := ebsreaper.NewLogger(os.Stdout, log15.LvlInfo)

	// The function's own region comes from AWS_REGION in the Lambda
	// environment.
	sess, err := ebsreaper.NewSession("")
	if err != nil {
		logger.Crit("could not create aws session", "error", err)
		os.Exit(1)
	}
	r, err := ebsreaper.New(&ebsreaper.ReaperInput{
		Session: sess,
		Logger:  &logger,
	})
	if err != nil {
		logger.Crit("could not create reaper", "error", err)
		os.Exit(1)
	}
	lambda.Start(r.HandleRequest)
}
