package events

import "github.com/shuldan/clikit/pkg/errors"

var newEventCode = errors.WithPrefix("EVENTS")

var (
	ErrInvalidListener          = newEventCode().New("listener must be a func(context.Context, E) error or have such a Handle method").In(errors.ErrConfiguration)
	ErrInvalidListenerSignature = newEventCode().New("listener has signature {{.signature}}, want func(context.Context, E) error").In(errors.ErrConfiguration)
	ErrInvalidEventType         = newEventCode().New("event type {{.type}} is not a typed nil struct pointer, e.g. (*MyEvent)(nil)").In(errors.ErrConfiguration)
	ErrListenerMismatch         = newEventCode().New("listener takes {{.actual}} but subscribes to {{.expected}}").In(errors.ErrConfiguration)
	ErrBusClosed                = newEventCode().New("cannot subscribe: event bus is closed").In(errors.ErrInternal)
	ErrPublishOnClosedBus       = newEventCode().New("cannot publish: event bus is closed").In(errors.ErrInternal)
	ErrEventChannelBlocked      = newEventCode().New("event queue is full").In(errors.ErrInternal)
	ErrListenerPanic            = newEventCode().New("listener for {{.event}} panicked").In(errors.ErrInternal)
	ErrInvalidBusInstance       = newEventCode().New("events bus instance must implement contracts.Bus").In(errors.ErrInternal)
	ErrBusNotFound              = newEventCode().New("events bus not found").In(errors.ErrNotFound)
)
