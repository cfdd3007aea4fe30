package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/zerowrap"

	"github.com/bnema/seedy/internal/boundaries/in"
	"github.com/bnema/seedy/internal/boundaries/out"
	"github.com/bnema/seedy/internal/domain"
)

var (
	_ in.Reconciler   = (*Service)(nil)
	_ in.EventDecoder = (*Decoder)(nil)
)

// Config holds the pipeline settings.
type Config struct {
	MatchMode           domain.MatchMode
	Filter              domain.LabelFilter
	CallTimeout         time.Duration
	DispatchConcurrency int
}

// Service runs one message through decode, inventory, match and dispatch.
// It keeps no state between messages.
type Service struct {
	decoder    in.EventDecoder
	inventory  *Inventory
	matcher    Matcher
	dispatcher *Dispatcher
	mode       domain.MatchMode
}

// NewService creates the reconcile pipeline. auth may be nil.
func NewService(orchestrator out.ServiceOrchestrator, auth out.RegistryAuthProvider, cfg Config) *Service {
	mode := cfg.MatchMode
	if mode == "" {
		mode = domain.MatchModeRepository
	}

	return &Service{
		decoder:    NewDecoder(),
		inventory:  NewInventory(orchestrator, cfg.Filter, cfg.CallTimeout),
		matcher:    NewMatcher(mode),
		dispatcher: NewDispatcher(orchestrator, auth, cfg.DispatchConcurrency, cfg.CallTimeout),
		mode:       mode,
	}
}

// Process runs a single pipeline pass. Failures are recorded on the result
// and logged; the caller acknowledges the message in every case.
func (s *Service) Process(ctx context.Context, msg domain.Message) domain.ReconcileResult {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:   "usecase",
		zerowrap.FieldUseCase: "Reconcile",
		"message_id":          msg.ID,
	})
	log := zerowrap.FromCtx(ctx)

	result := domain.ReconcileResult{
		MessageID: msg.ID,
		State:     domain.StateReceived,
		Dispatch:  domain.DispatchNone,
	}

	event, err := s.decoder.Decode(msg.Body)
	if err != nil {
		result.Err = err
		log.Warn().Err(err).Int("receive_count", msg.ReceiveCount).Msg("dropping undecodable message")
		return result
	}
	result.Event = &event
	result.State = domain.StateDecoded

	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldEvent: event.ID,
		"repository":        event.RepositoryName,
		"tag":               event.Tag,
	})
	log = zerowrap.FromCtx(ctx)

	if !event.IsSuccessfulPush() {
		result.Err = domain.ErrEventIgnored
		log.Info().
			Str("action_type", event.ActionType).
			Str("result", event.Result).
			Msg("ignoring registry event")
		return result
	}

	// An untagged push names no repository:tag, so nothing can match it.
	ref, ok := event.Reference(s.mode)
	if !ok {
		log.Info().Msg("push has no matchable reference, nothing to update")
		result.State = domain.StateMatched
		return result
	}

	if event.Digest == "" {
		result.Err = domain.ErrMissingDigest
		log.Warn().Str("image", ref.String()).Msg("push has no digest, cannot pin update")
		return result
	}

	log.Info().Str("image", ref.String()).Str("digest", event.Digest).Msg("processing image push")

	services, err := s.inventory.ListServices(ctx)
	if err != nil {
		result.Err = err
		log.WrapErr(err, "abandoning event")
		return result
	}

	matched := s.matcher.Match(event, services)
	result.State = domain.StateMatched
	result.Matched = len(matched)

	if len(matched) == 0 {
		log.Debug().Int("candidates", len(services)).Msg("no services run the pushed image")
		return result
	}

	result.Outcomes = s.dispatcher.DispatchAll(ctx, event, ref, matched)
	result.State = domain.StateDispatched
	result.Dispatch = domain.SummarizeOutcomes(result.Outcomes)

	failed := result.Failed()
	if len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, o := range failed {
			errs = append(errs, o.Err)
		}
		result.Err = errors.Join(errs...)
	}

	log.Info().
		Int("matched", len(matched)).
		Int("failed", len(failed)).
		Str("dispatch", string(result.Dispatch)).
		Msg("image push reconciled")

	return result
}
