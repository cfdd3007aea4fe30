// Package ecrauth provides registry credentials for ECR-hosted images so
// that swarm nodes can pull the pinned image during a forced update.
package ecrauth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/smithy-go"
	"github.com/bnema/zerowrap"
	"github.com/docker/docker/api/types/registry"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

// Tokens are refreshed this long before they expire.
const refreshMargin = 5 * time.Minute

var _ out.RegistryAuthProvider = (*Provider)(nil)

type api interface {
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
}

type cachedAuth struct {
	encoded   string
	expiresAt time.Time
}

// Provider exchanges the process' AWS credentials for an ECR registry token.
type Provider struct {
	client api
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cachedAuth
}

// NewProvider creates a new Provider.
func NewProvider(client api) *Provider {
	return &Provider{
		client: client,
		now:    time.Now,
		cache:  make(map[string]cachedAuth),
	}
}

// NewClient creates an ECR client from an AWS config.
func NewClient(cfg aws.Config) *ecr.Client {
	return ecr.NewFromConfig(cfg)
}

// EncodedAuth returns base64 encoded Docker registry credentials for the
// registry the event was pushed to.
func (p *Provider) EncodedAuth(ctx context.Context, event domain.ImagePushEvent) (string, error) {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "adapter",
		zerowrap.FieldAdapter: "ecrauth",
		zerowrap.FieldAction:  "EncodedAuth",
		"registry":            event.RegistryHost(),
	})
	log := zerowrap.FromCtx(ctx)

	key := event.Account + "/" + event.Region

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.cache[key]; ok && p.now().Before(c.expiresAt.Add(-refreshMargin)) {
		return c.encoded, nil
	}

	var opts []func(*ecr.Options)
	if event.Region != "" {
		region := event.Region
		opts = append(opts, func(o *ecr.Options) { o.Region = region })
	}

	res, err := p.client.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{}, opts...)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			log.Debug().Str("code", apiErr.ErrorCode()).Msg("ECR rejected token request")
		}
		return "", fmt.Errorf("%w: %w", domain.ErrRegistryAuth, err)
	}
	if len(res.AuthorizationData) == 0 {
		return "", fmt.Errorf("%w: no authorization data returned", domain.ErrRegistryAuth)
	}

	data := res.AuthorizationData[0]
	username, password, err := decodeToken(aws.ToString(data.AuthorizationToken))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRegistryAuth, err)
	}

	server := event.RegistryHost()
	if server == "" {
		server = strings.TrimPrefix(aws.ToString(data.ProxyEndpoint), "https://")
	}

	encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      username,
		Password:      password,
		ServerAddress: server,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRegistryAuth, err)
	}

	expiresAt := p.now().Add(time.Hour)
	if data.ExpiresAt != nil {
		expiresAt = *data.ExpiresAt
	}
	p.cache[key] = cachedAuth{encoded: encoded, expiresAt: expiresAt}

	log.Debug().Time("expires_at", expiresAt).Msg("registry token refreshed")
	return encoded, nil
}

// decodeToken splits an ECR authorization token, base64("AWS:<password>").
func decodeToken(token string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("decode authorization token: %w", err)
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok || user == "" {
		return "", "", errors.New("malformed authorization token")
	}
	return user, pass, nil
}
