package wizard

import (
	"context"
	"fmt"
)

// HookName identifies a lifecycle point in the wizard pipeline.
type HookName string

// Hook names, in the order the pipeline invokes them.
const (
	HookPreGetErrors  HookName = "pre-getErrors"
	HookPostGetErrors HookName = "post-getErrors"
	HookPostGetValues HookName = "post-getValues"
	HookPreRender     HookName = "pre-render"
	HookPreProcess    HookName = "pre-process"
)

// HookNames returns every supported hook name.
func HookNames() []HookName {
	return []HookName{
		HookPreGetErrors,
		HookPostGetErrors,
		HookPostGetValues,
		HookPreRender,
		HookPreProcess,
	}
}

// HookFunc is a single lifecycle callback. A non-nil error aborts the
// remaining pipeline and is routed to the host's error handling.
type HookFunc func(ctx context.Context, req *Request, res *Response) error

// FieldHooks is implemented by field plugins that participate in every
// lifecycle stage.
type FieldHooks interface {
	Key() string
	PreGetErrors(ctx context.Context, req *Request, res *Response) error
	PostGetErrors(ctx context.Context, req *Request, res *Response) error
	PostGetValues(ctx context.Context, req *Request, res *Response) error
	PreRender(ctx context.Context, req *Request, res *Response) error
	PreProcess(ctx context.Context, req *Request, res *Response) error
}

// Hooks returns the named hook map for a field plugin.
func Hooks(field FieldHooks) map[HookName]HookFunc {
	if field == nil {
		return nil
	}
	return map[HookName]HookFunc{
		HookPreGetErrors:  field.PreGetErrors,
		HookPostGetErrors: field.PostGetErrors,
		HookPostGetValues: field.PostGetValues,
		HookPreRender:     field.PreRender,
		HookPreProcess:    field.PreProcess,
	}
}

// Invoke runs a single named hook on field.
func Invoke(ctx context.Context, field FieldHooks, name HookName, req *Request, res *Response) error {
	if field == nil {
		return nil
	}
	fn, ok := Hooks(field)[name]
	if !ok {
		return fmt.Errorf("wizard: unknown hook %q", name)
	}
	return fn(ctx, req, res)
}
