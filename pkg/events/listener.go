package events

import (
	"context"
	"fmt"
	"reflect"

	"github.com/shuldan/clikit/pkg/contracts"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

type listener struct {
	fn        reflect.Value
	eventType reflect.Type
	name      string
}

func newListener(l any) (*listener, error) {
	v := reflect.ValueOf(l)
	if !v.IsValid() {
		return nil, ErrInvalidListener
	}

	fn := v
	if v.Kind() != reflect.Func {
		fn = v.MethodByName("Handle")
		if !fn.IsValid() {
			return nil, ErrInvalidListener
		}
	}

	t := fn.Type()
	if t.NumIn() != 2 || t.NumOut() != 1 || t.In(0) != contextType || t.Out(0) != errorType {
		return nil, ErrInvalidListenerSignature.WithDetail("signature", t.String())
	}

	return &listener{fn: fn, eventType: t.In(1), name: fmt.Sprintf("%T", l)}, nil
}

func (l *listener) call(ctx context.Context, event any) error {
	out := l.fn.Call([]reflect.Value{reflect.ValueOf(ctx), reflect.ValueOf(event)})
	err, _ := out[0].Interface().(error)
	return err
}

// Listen subscribes a typed listener for events published as E values.
func Listen[E any](bus contracts.Bus, fn func(context.Context, E) error) error {
	return bus.Subscribe((*E)(nil), fn)
}
