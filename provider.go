package ebsreaper

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
)

// statusAvailable is the EBS volume state of a volume that is not
// in use by any instance.
const statusAvailable = "available"

// Provider is the slice of the EC2 control plane that a Reaper needs.
// The AWS implementation is returned by NewAWSProvider; tests substitute
// an in-memory one.
type Provider interface {
	// ListRegions returns the region names visible to the caller's
	// credentials in the order the provider returned them.
	ListRegions(ctx context.Context) (regions []string, err error)

	// ListAvailableVolumes calls fn once per page of volumes in region
	// whose status is "available". Iteration stops early when fn
	// returns false.
	ListAvailableVolumes(ctx context.Context, region string, fn func(page []Volume) bool) (err error)

	// DeleteVolume deletes a single volume in region.
	DeleteVolume(ctx context.Context, region, volumeID string) (err error)
}

// AWSProvider implements Provider on top of an aws-sdk-go session.
// A region scoped EC2 client is built from the shared session for
// every call so no per-region state is held between calls.
type AWSProvider struct {
	session   *session.Session
	newClient func(region string) ec2iface.EC2API
}

// NewAWSProvider returns an AWSProvider that resolves credentials
// through sess. Region enumeration uses the session's own region.
func NewAWSProvider(sess *session.Session) *AWSProvider {
	p := AWSProvider{session: sess}
	p.newClient = func(region string) ec2iface.EC2API {
		if region == "" {
			return ec2.New(p.session)
		}
		return ec2.New(p.session, aws.NewConfig().WithRegion(region))
	}
	return &p
}

// ListRegions describes the regions enabled for the account.
func (p *AWSProvider) ListRegions(ctx context.Context) (regions []string, err error) {
	svc := p.newClient("")
	results, err := svc.DescribeRegionsWithContext(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return regions, err
	}
	for _, r := range results.Regions {
		regions = append(regions, aws.StringValue(r.RegionName))
	}
	return regions, err
}

// ListAvailableVolumes pages through DescribeVolumes with a status
// filter of "available", handing each converted page to fn.
func (p *AWSProvider) ListAvailableVolumes(ctx context.Context, region string, fn func(page []Volume) bool) (err error) {
	svc := p.newClient(region)
	input := ec2.DescribeVolumesInput{
		Filters: []*ec2.Filter{
			{
				Name:   aws.String("status"),
				Values: []*string{aws.String(statusAvailable)},
			},
		},
	}
	return svc.DescribeVolumesPagesWithContext(ctx, &input,
		func(page *ec2.DescribeVolumesOutput, lastPage bool) bool {
			return fn(volumesFromEC2(page.Volumes))
		})
}

// DeleteVolume issues a single DeleteVolume call. Errors are returned
// as they come back from the SDK so callers can inspect awserr codes.
func (p *AWSProvider) DeleteVolume(ctx context.Context, region, volumeID string) (err error) {
	svc := p.newClient(region)
	_, err = svc.DeleteVolumeWithContext(ctx, &ec2.DeleteVolumeInput{
		VolumeId: aws.String(volumeID),
	})
	return err
}
