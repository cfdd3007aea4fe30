package reconcile

import (
	"context"
	_ "crypto/sha256" // digest algorithm used by reference.Parse
	"fmt"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/distribution/reference"

	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

// Inventory fetches a fresh snapshot of running services for every event.
type Inventory struct {
	orchestrator out.ServiceOrchestrator
	filter       domain.LabelFilter
	callTimeout  time.Duration
}

// NewInventory creates a new Inventory. A zero callTimeout disables the
// per-call deadline.
func NewInventory(orchestrator out.ServiceOrchestrator, filter domain.LabelFilter, callTimeout time.Duration) *Inventory {
	return &Inventory{
		orchestrator: orchestrator,
		filter:       filter,
		callTimeout:  callTimeout,
	}
}

// ListServices returns every service whose image parses to repository:tag.
// Services with malformed or untagged images are skipped.
func (i *Inventory) ListServices(ctx context.Context) ([]domain.ServiceDescriptor, error) {
	log := zerowrap.FromCtx(ctx)

	callCtx, cancel := withCallTimeout(ctx, i.callTimeout)
	defer cancel()

	records, err := i.orchestrator.ListServices(callCtx, i.filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInventory, err)
	}

	services := make([]domain.ServiceDescriptor, 0, len(records))
	for _, rec := range records {
		spec := currentImage(rec)
		ref, err := ParseImageReference(spec)
		if err != nil {
			log.Debug().
				Str(zerowrap.FieldEntityID, rec.ID).
				Str("service", rec.Name).
				Str("image", spec).
				Err(err).
				Msg("skipping service with unusable image")
			continue
		}

		services = append(services, domain.ServiceDescriptor{
			ID:     rec.ID,
			Name:   rec.Name,
			Image:  ref,
			Labels: rec.Labels,
		})
	}

	log.Debug().
		Int("listed", len(records)).
		Int(zerowrap.FieldCount, len(services)).
		Msg("service inventory fetched")

	return services, nil
}

// currentImage prefers the image as written in the stack file over the
// resolved container spec image.
func currentImage(rec domain.ServiceRecord) string {
	if img := rec.Labels[domain.LabelStackImage]; img != "" {
		return img
	}
	return rec.ImageSpec
}

// ParseImageReference parses an image spec into repository:tag. Any digest
// is dropped. The repository is kept exactly as written.
func ParseImageReference(spec string) (domain.ImageReference, error) {
	if spec == "" {
		return domain.ImageReference{}, fmt.Errorf("%w: empty image spec", domain.ErrInvalidImageReference)
	}

	parsed, err := reference.Parse(spec)
	if err != nil {
		return domain.ImageReference{}, fmt.Errorf("%w: %w", domain.ErrInvalidImageReference, err)
	}

	named, ok := parsed.(reference.Named)
	if !ok {
		return domain.ImageReference{}, fmt.Errorf("%w: %q has no repository", domain.ErrInvalidImageReference, spec)
	}

	tagged, ok := parsed.(reference.Tagged)
	if !ok {
		return domain.ImageReference{}, fmt.Errorf("%w: %q has no tag", domain.ErrInvalidImageReference, spec)
	}

	return domain.ImageReference{Repository: named.Name(), Tag: tagged.Tag()}, nil
}

func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
