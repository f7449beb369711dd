package ebsreaper

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// Response is the payload returned to the Lambda runtime.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// HandleRequest is the Lambda entry point. The scheduled event is not
// inspected. Once the sweep completes the response is always a 200,
// even if some deletions failed; those failures only show up in the
// logs. An error is returned only when the sweep could not run, for
// example because regions could not be enumerated.
func (r *Reaper) HandleRequest(ctx context.Context, _ events.CloudWatchEvent) (Response, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		r.log.Debug("invoked", "request_id", lc.AwsRequestID)
	}
	res, err := r.Run(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: res.StatusCode, Body: res.Message}, nil
}
