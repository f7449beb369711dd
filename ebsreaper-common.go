package ebsreaper

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/juju/errors"
)

// DefaultRegion is the region used to enumerate regions when the
// session resolves none from the environment or shared config.
const DefaultRegion = "us-east-1"

// Volume is the part of an EBS volume the reaper looks at.
type Volume struct {
	ID          string
	Attachments []Attachment
}

// Attachment links a volume to an instance.
type Attachment struct {
	InstanceID string
}

// Attached reports whether the volume had any attachment records when
// it was listed.
func (v Volume) Attached() bool {
	return len(v.Attachments) > 0
}

// InstanceIDs lists the instances the volume is attached to.
func (v Volume) InstanceIDs() (ids []string) {
	for _, att := range v.Attachments {
		ids = append(ids, att.InstanceID)
	}
	return ids
}

// volumesFromEC2 converts a page of SDK volumes into Volumes.
func volumesFromEC2(vols []*ec2.Volume) (out []Volume) {
	for _, vol := range vols {
		if vol == nil {
			continue
		}
		v := Volume{ID: aws.StringValue(vol.VolumeId)}
		for _, att := range vol.Attachments {
			v.Attachments = append(v.Attachments, Attachment{
				InstanceID: aws.StringValue(att.InstanceId),
			})
		}
		out = append(out, v)
	}
	return out
}

// errorCode returns the AWS error code carried by err, or an empty
// string when err did not come from the service.
func errorCode(err error) string {
	if aerr, ok := errors.Cause(err).(awserr.Error); ok {
		return aerr.Code()
	}
	return ""
}

// NewSession builds a session from the ambient credential chain and
// shared config. When no region is configured DefaultRegion is used so
// that region enumeration has an endpoint to talk to.
func NewSession(region string) (sess *session.Session, err error) {
	sess, err = session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating aws session")
	}
	if region != "" {
		sess.Config.Region = aws.String(region)
	}
	if aws.StringValue(sess.Config.Region) == "" {
		sess.Config.Region = aws.String(DefaultRegion)
	}
	return sess, nil
}
