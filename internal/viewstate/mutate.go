package viewstate

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cmlabs-hris/smart-attendance-go/internal/pkg/apierr"
)

type intent struct {
	kind   MutationKind
	verb   string
	target *int64
	need   Need
}

// Create sends payload to the gateway, upserts the returned item and then
// reloads with the current params.
func (c *Controller[T, P]) Create(ctx context.Context, payload any) (Outcome, error) {
	return c.mutate(ctx, intent{kind: MutationCreate, need: NeedCreate}, func(ctx context.Context) ([]T, error) {
		item, err := c.cfg.Gateway.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		return []T{item}, nil
	})
}

func (c *Controller[T, P]) Update(ctx context.Context, id int64, payload any) (Outcome, error) {
	return c.mutate(ctx, intent{kind: MutationUpdate, target: &id, need: NeedUpdate}, func(ctx context.Context) ([]T, error) {
		item, err := c.cfg.Gateway.Update(ctx, id, payload)
		if err != nil {
			return nil, err
		}
		return []T{item}, nil
	})
}

// Delete removes id remotely and locally. Deleting an id the server no
// longer knows succeeds.
func (c *Controller[T, P]) Delete(ctx context.Context, id int64) (Outcome, error) {
	return c.mutate(ctx, intent{kind: MutationDelete, target: &id, need: NeedDelete}, func(ctx context.Context) ([]T, error) {
		err := c.cfg.Gateway.Delete(ctx, id)
		if apiErr := apierr.From(err); apiErr != nil && apiErr.Kind == apierr.KindNotFound {
			return nil, nil
		}
		return nil, err
	})
}

// Action runs a per-item verb such as approve or reject and replaces the
// affected item with the server's copy.
func (c *Controller[T, P]) Action(ctx context.Context, id int64, verb string, payload any) (Outcome, error) {
	in := intent{kind: MutationAction, verb: verb, target: &id, need: c.needFor(verb)}
	return c.mutate(ctx, in, func(ctx context.Context) ([]T, error) {
		item, err := c.cfg.Gateway.Action(ctx, id, verb, payload)
		if err != nil {
			return nil, err
		}
		return []T{item}, nil
	})
}

// BulkAction runs a collection-level verb and upserts every returned item.
func (c *Controller[T, P]) BulkAction(ctx context.Context, verb string, payload any) (Outcome, error) {
	in := intent{kind: MutationBulkAction, verb: verb, need: c.needFor(verb)}
	return c.mutate(ctx, in, func(ctx context.Context) ([]T, error) {
		return c.cfg.Gateway.BulkAction(ctx, verb, payload)
	})
}

// ConsumeOutcome pops the oldest unconsumed outcome.
func (c *Controller[T, P]) ConsumeOutcome() (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.outcomes) == 0 {
		return Outcome{}, false
	}
	o := c.outcomes[0]
	c.outcomes = c.outcomes[1:]
	c.publishLocked()
	return o, true
}

func (c *Controller[T, P]) needFor(verb string) Need {
	if need, ok := c.cfg.Verbs[verb]; ok {
		return need
	}
	return NeedApprove
}

func (c *Controller[T, P]) mutate(ctx context.Context, in intent, call func(context.Context) ([]T, error)) (Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Outcome{}, ErrClosed
	}
	if !in.need.grantedBy(c.cfg.Capabilities) {
		c.mu.Unlock()
		c.logger.Warn("Mutation denied", "kind", string(in.kind), "verb", in.verb)
		return Outcome{}, ErrCapabilityDenied
	}

	out := Outcome{
		IntentID: uuid.NewString(),
		Kind:     in.kind,
		Verb:     in.verb,
		TargetID: in.target,
	}
	c.submitting++
	c.submitErr = ""
	c.publishLocked()
	c.mu.Unlock()

	log := c.logger.With(slog.String("intent", out.IntentID), slog.String("kind", string(in.kind)))
	log.Debug("Mutation started", "verb", in.verb)

	callCtx, done := c.callContext(ctx)
	items, err := call(callCtx)
	done()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return out, ErrClosed
	}
	c.submitting--

	if err != nil {
		apiErr := apierr.From(err)
		if apiErr.Kind == apierr.KindCanceled {
			out.ErrKind = apierr.KindCanceled
			c.outcomes = append(c.outcomes, out)
			c.publishLocked()
			c.mu.Unlock()
			return out, apiErr
		}

		out.ErrKind = apiErr.Kind
		out.Message = apiErr.Message
		c.submitErr = apiErr.Message

		reload := false
		switch apiErr.Kind {
		case apierr.KindUnauthorized:
			c.invalidateSession("unauthorized response while mutating " + c.cfg.Resource)
		case apierr.KindNotFound:
			if in.target != nil && c.status != StatusLoading {
				c.removeLocked(*in.target)
				c.recompute()
			}
			reload = true
		}
		c.outcomes = append(c.outcomes, out)
		c.publishLocked()
		params := c.params
		c.mu.Unlock()

		log.Warn("Mutation failed", "verb", in.verb, "error", apiErr)
		if reload {
			_ = c.Load(ctx, params)
		}
		return out, apiErr
	}

	out.OK = true
	out.Message = c.cfg.Messages[outcomeKey(in)]
	if len(items) == 1 {
		out.ResultID = c.cfg.IDOf(items[0])
	} else if in.target != nil {
		out.ResultID = in.target
	}

	// Patching during a load would break the Loading invariant; the reload
	// below brings the change in instead.
	if c.status != StatusLoading {
		if in.kind == MutationDelete {
			c.removeLocked(*in.target)
		}
		for _, item := range c.dedupe(items) {
			c.upsertLocked(item)
		}
		c.recompute()
	}
	c.outcomes = append(c.outcomes, out)
	c.publishLocked()
	params := c.params
	c.mu.Unlock()

	log.Debug("Mutation completed", "verb", in.verb, "count", len(items))
	_ = c.Load(ctx, params)
	return out, nil
}

func outcomeKey(in intent) string {
	if in.verb != "" {
		return in.verb
	}
	return string(in.kind)
}
