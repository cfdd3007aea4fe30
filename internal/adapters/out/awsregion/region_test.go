package awsregion

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/bnema/zerowrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIMDS struct {
	region string
	err    error
}

func (f fakeIMDS) GetRegion(context.Context, *imds.GetRegionInput, ...func(*imds.Options)) (*imds.GetRegionOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &imds.GetRegionOutput{Region: f.region}, nil
}

func testCtx() context.Context {
	return zerowrap.WithCtx(context.Background(), zerowrap.Default())
}

func TestDiscover(t *testing.T) {
	region, err := Discover(testCtx(), fakeIMDS{region: "eu-west-3"})
	require.NoError(t, err)
	assert.Equal(t, "eu-west-3", region)
}

func TestDiscover_Unavailable(t *testing.T) {
	_, err := Discover(testCtx(), fakeIMDS{err: errors.New("EC2 IMDS request failed")})
	assert.ErrorIs(t, err, ErrNoRegion)

	_, err = Discover(testCtx(), fakeIMDS{})
	assert.ErrorIs(t, err, ErrNoRegion)
}

func TestLoadConfig_ExplicitRegion(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	cfg, err := LoadConfig(testCtx(), "ap-southeast-2")
	require.NoError(t, err)
	assert.Equal(t, "ap-southeast-2", cfg.Region)
}

func TestDiscover_AcceptsSDKClient(t *testing.T) {
	var client metadataAPI = imds.New(imds.Options{})
	assert.NotNil(t, client)
}
