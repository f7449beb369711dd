package ebsreaper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRequest(t *testing.T) {
	p := &fakeProvider{
		regions: []string{"us-east-1"},
		pages: map[string][][]Volume{
			"us-east-1": {{vol("vol-C"), vol("vol-D")}},
		},
		deleteErr: map[string]error{
			"vol-C": awserr.New("UnauthorizedOperation", "You are not authorized to perform this operation.", nil),
		},
	}
	r, _ := newTestReaper(t, p, false)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})
	resp, err := r.HandleRequest(ctx, events.CloudWatchEvent{DetailType: "Scheduled Event"})
	require.NoError(t, err)
	assert.Equal(t, Response{StatusCode: 200, Body: "Completed volume deletion process"}, resp)
	assert.Equal(t, []string{"us-east-1/vol-C", "us-east-1/vol-D"}, p.deleted)
	assert.Equal(t, []string{"us-east-1"}, p.listCalls)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"statusCode":200,"body":"Completed volume deletion process"}`, string(b))
}

func TestHandleRequest_RegionFailure(t *testing.T) {
	p := &fakeProvider{regionsErr: awserr.New("RequestError", "send request failed", nil)}
	r, _ := newTestReaper(t, p, false)

	_, err := r.HandleRequest(context.Background(), events.CloudWatchEvent{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "describing regions")
}

func TestHandleRequest_ListFailure(t *testing.T) {
	p := &fakeProvider{
		regions: []string{"us-east-1"},
		listErr: map[string]error{
			"us-east-1": awserr.New("UnauthorizedOperation", "You are not authorized to perform this operation.", nil),
		},
	}
	r, _ := newTestReaper(t, p, false)

	resp, err := r.HandleRequest(context.Background(), events.CloudWatchEvent{})
	require.Error(t, err)
	assert.Equal(t, Response{}, resp)
	assert.Contains(t, err.Error(), "listing volumes in us-east-1")
}
