// Package awsregion loads the AWS SDK configuration and discovers the
// region from instance metadata when none is configured.
package awsregion

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/bnema/zerowrap"
)

// ErrNoRegion is returned when no region is configured and instance
// metadata is unavailable.
var ErrNoRegion = errors.New("no AWS region configured and instance metadata unavailable")

var _ metadataAPI = (*imds.Client)(nil)

type metadataAPI interface {
	GetRegion(ctx context.Context, params *imds.GetRegionInput, optFns ...func(*imds.Options)) (*imds.GetRegionOutput, error)
}

// LoadConfig loads the default AWS configuration. region overrides the
// SDK's own resolution; when both are empty the EC2 instance metadata
// service is asked.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.Region == "" {
		r, err := Discover(ctx, imds.NewFromConfig(cfg))
		if err != nil {
			return aws.Config{}, err
		}
		cfg.Region = r
	}

	return cfg, nil
}

// Discover asks the instance metadata service for the current region.
func Discover(ctx context.Context, client metadataAPI) (string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "imds",
		zerowrap.FieldAction:  "Discover",
	})
	log := zerowrap.FromCtx(ctx)

	out, err := client.GetRegion(ctx, &imds.GetRegionInput{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoRegion, err)
	}
	if out.Region == "" {
		return "", ErrNoRegion
	}

	log.Info().Str("region", out.Region).Msg("region discovered from instance metadata")
	return out.Region, nil
}
