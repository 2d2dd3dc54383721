// Package hooking lets observers attach to the points where a platform does
// cache maintenance work.
package hooking

import "reflect"

// HookPos identifies a point in a platform where hooks run.
type HookPos struct {
	Name string
}

// HookCtx is what a hook receives. Item is the event at Pos. Detail, when
// set, describes the state the event acted on.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by anything hooks can be attached to.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// A Hook observes a Hookable.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase keeps a list of hooks. Embed it to implement Hookable.
type HookableBase struct {
	hookList []Hook
}

func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook appends hook. Registering the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

// Function hooks cannot be compared and are never treated as duplicates.
func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	if !reflect.TypeOf(hook).Comparable() {
		return
	}

	for _, registered := range h.hookList {
		if !reflect.TypeOf(registered).Comparable() {
			continue
		}

		if registered == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook runs every hook in registration order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
