package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/GESkunkworks/ebsreaper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	regions    []string
	regionsErr error
	volumes    map[string][]ebsreaper.Volume
	deleted    []string
}

func (s *stubProvider) ListRegions(ctx context.Context) ([]string, error) {
	return s.regions, s.regionsErr
}

func (s *stubProvider) ListAvailableVolumes(ctx context.Context, region string, fn func([]ebsreaper.Volume) bool) error {
	if vols, ok := s.volumes[region]; ok {
		fn(vols)
	}
	return nil
}

func (s *stubProvider) DeleteVolume(ctx context.Context, region, volumeID string) error {
	s.deleted = append(s.deleted, volumeID)
	return nil
}

func withConfig(t *testing.T, c *ReaperConfig, buf *bytes.Buffer) {
	t.Helper()
	oldCfg, oldLogger := cfg, logger
	cfg = c
	logger = newLogger(buf, c.Debug)
	t.Cleanup(func() {
		cfg, logger = oldCfg, oldLogger
	})
}

func TestRunReaper(t *testing.T) {
	buf := &bytes.Buffer{}
	withConfig(t, NewReaperConfig(), buf)

	p := &stubProvider{
		regions: []string{"us-east-1"},
		volumes: map[string][]ebsreaper.Volume{
			"us-east-1": {
				{ID: "vol-A"},
				{ID: "vol-B", Attachments: []ebsreaper.Attachment{{InstanceID: "i-1"}}},
			},
		},
	}

	require.NoError(t, runReaper(context.Background(), p))
	assert.Equal(t, []string{"vol-A"}, p.deleted)
	assert.Contains(t, buf.String(), " - INFO - Deleted vol-A in us-east-1")
	assert.Contains(t, buf.String(), " - INFO - Volume vol-B in us-east-1 is attached, skipping")
}

func TestRunReaper_DryRun(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewReaperConfig()
	c.DryRun = true
	c.Debug = true
	withConfig(t, c, buf)

	p := &stubProvider{
		regions: []string{"us-east-1"},
		volumes: map[string][]ebsreaper.Volume{"us-east-1": {{ID: "vol-A"}}},
	}

	require.NoError(t, runReaper(context.Background(), p))
	assert.Empty(t, p.deleted)
	assert.Contains(t, buf.String(), " - DEBUG - starting sweep")
	assert.Contains(t, buf.String(), "Would delete unattached volume vol-A in us-east-1")
}

func TestRunReaper_RegionFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	withConfig(t, NewReaperConfig(), buf)

	p := &stubProvider{regionsErr: errors.New("no credentials")}

	err := runReaper(context.Background(), p)
	require.Error(t, err)
	assert.Contains(t, buf.String(), " - CRITICAL - sweep failed")
}
