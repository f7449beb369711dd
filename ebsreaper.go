package ebsreaper

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/inconshreveable/log15"
	"github.com/juju/errors"
)

// CompletedMessage is the message reported for every sweep that ran to
// the end, whether or not individual deletions failed.
const CompletedMessage = "Completed volume deletion process"

// A Reaper sweeps every region visible to its Provider and deletes the
// EBS volumes that are available and have no attachments. Create a
// ReaperInput and pass it to this package's New method to get a Reaper,
// then call Run.
//
// Regions and volumes are processed one at a time. A Reaper must not
// be shared between concurrent Run calls.
type Reaper struct {
	provider Provider
	log      log15.Logger
	dryRun   bool
}

// ReaperInput provides configuration inputs for building a Reaper.
type ReaperInput struct {
	// AWS Session to use for credentials. Region enumeration goes to
	// the session's region and volumes are listed and deleted with
	// region scoped clients derived from it.
	//
	// Session is required unless Provider is set.
	Session *session.Session

	// Provider replaces the AWS backed provider built from Session.
	Provider Provider

	// Reaper uses log15 (https://github.com/inconshreveable/log15)
	// for logging. If no Logger is provided Reaper sets up its own
	// handler writing LineFormat lines to stdout at Info level.
	Logger *log15.Logger

	// When DryRun is true unattached volumes are reported but no
	// DeleteVolume call is made.
	// Default: false
	DryRun *bool
}

// Result summarises a completed sweep.
type Result struct {
	StatusCode int
	Message    string

	// Regions is the number of regions visited.
	Regions int

	// Deleted counts successful DeleteVolume calls.
	Deleted int

	// Skipped counts volumes left alone because they were attached.
	Skipped int

	// Failed counts DeleteVolume calls that returned an error.
	Failed int

	// Candidates counts unattached volumes found during a dry run.
	Candidates int
}

// New returns a Reaper configured from input, filling in defaults for
// any property that was not specified.
func New(input *ReaperInput) (r *Reaper, err error) {
	var e Reaper
	if input == nil {
		return nil, errors.NotValidf("nil ReaperInput")
	}

	switch {
	case input.Provider != nil:
		e.provider = input.Provider
	case input.Session != nil:
		e.provider = NewAWSProvider(input.Session)
	default:
		return nil, errors.NotValidf("ReaperInput without Session or Provider")
	}

	if input.Logger == nil {
		e.setDefaultLogger()
	} else {
		e.log = *input.Logger
	}

	DefaultDryRun := false
	if input.DryRun == nil {
		input.DryRun = &DefaultDryRun
	}
	e.dryRun = *input.DryRun
	return &e, nil
}

// setDefaultLogger sets up a logger for the Reaper at Info level
// writing to stdout.
func (r *Reaper) setDefaultLogger() {
	r.log = NewLogger(os.Stdout, log15.LvlInfo)
}

// Run performs one sweep. Failing to enumerate regions or to list the
// volumes of a region is fatal and returned; a failed deletion is
// logged and counted and the sweep carries on.
func (r *Reaper) Run(ctx context.Context) (res *Result, err error) {
	regions, err := r.provider.ListRegions(ctx)
	if err != nil {
		r.log.Error("Could not describe regions", "error", err)
		return nil, errors.Annotate(err, "describing regions")
	}
	r.log.Debug("found regions", "count", len(regions))

	res = &Result{}
	for _, region := range regions {
		if err = ctx.Err(); err != nil {
			return nil, errors.Annotatef(err, "sweep interrupted before region %s", region)
		}
		res.Regions++
		if err = r.sweepRegion(ctx, region, res); err != nil {
			return nil, err
		}
	}

	res.StatusCode = 200
	res.Message = CompletedMessage
	r.log.Debug(fmt.Sprintf("Swept %d regions: %d deleted, %d skipped, %d failed, %d dry run candidates",
		res.Regions, res.Deleted, res.Skipped, res.Failed, res.Candidates))
	r.log.Info(CompletedMessage)
	return res, nil
}

// sweepRegion drains every page of available volumes in region. A
// listing error ends the sweep, since the region's volumes were never
// evaluated.
func (r *Reaper) sweepRegion(ctx context.Context, region string, res *Result) (err error) {
	r.log.Info(fmt.Sprintf("Checking region: %s", region))
	pageNum := 0
	var cancelled error
	err = r.provider.ListAvailableVolumes(ctx, region, func(page []Volume) bool {
		pageNum++
		r.log.Debug("processing page..", "region", region, "page", pageNum, "volumes", len(page))
		for _, vol := range page {
			if cancelled = ctx.Err(); cancelled != nil {
				return false
			}
			r.reapVolume(ctx, region, vol, res)
		}
		return true
	})
	if cancelled != nil {
		return errors.Annotatef(cancelled, "sweep interrupted in region %s", region)
	}
	if err != nil {
		if ctx.Err() != nil {
			return errors.Annotatef(ctx.Err(), "sweep interrupted in region %s", region)
		}
		r.log.Error(fmt.Sprintf("Could not list volumes in %s: %v", region, err), errorCtx(err)...)
		return errors.Annotatef(err, "listing volumes in %s", region)
	}
	return nil
}

// reapVolume deletes vol when it has no attachments. The attachment
// list is the one observed at listing time; a volume attached since
// then is rejected by the service and logged like any other failure.
func (r *Reaper) reapVolume(ctx context.Context, region string, vol Volume, res *Result) {
	if vol.Attached() {
		res.Skipped++
		r.log.Info(fmt.Sprintf("Volume %s in %s is attached, skipping", vol.ID, region))
		r.log.Debug(fmt.Sprintf("Volume %s is attached to %s", vol.ID, strings.Join(vol.InstanceIDs(), ", ")))
		return
	}
	if r.dryRun {
		res.Candidates++
		r.log.Info(fmt.Sprintf("Would delete unattached volume %s in %s", vol.ID, region))
		return
	}
	r.log.Info(fmt.Sprintf("Deleting unattached volume %s in %s", vol.ID, region))
	if err := r.provider.DeleteVolume(ctx, region, vol.ID); err != nil {
		res.Failed++
		r.log.Error(fmt.Sprintf("Could not delete %s in %s: %v", vol.ID, region, err), errorCtx(err)...)
		return
	}
	res.Deleted++
	r.log.Info(fmt.Sprintf("Deleted %s in %s", vol.ID, region))
}

func errorCtx(err error) []interface{} {
	if code := errorCode(err); code != "" {
		return []interface{}{"code", code}
	}
	return nil
}
