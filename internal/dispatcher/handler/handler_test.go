package handler_test

import (
	"strings"
	"testing"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
	"github.com/dshills/cursorkit/internal/dispatcher/handler"
	"github.com/dshills/cursorkit/internal/input"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.NewAction("save_cursors"), execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("anything") {
		t.Error("expected CanHandle to return true")
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(input.NewAction("x"), execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestHandlerFuncWithPriority(t *testing.T) {
	fn := handler.NewHandlerFuncWithPriority(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	}, 42)

	if fn.Priority() != 42 {
		t.Errorf("expected priority 42, got %d", fn.Priority())
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := handler.NewBaseNamespaceHandler("cursor")
	h.Register("go_to_soft_begin", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("soft")
	})
	h.Register("save_cursors", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	if h.Namespace() != "cursor" {
		t.Errorf("expected namespace cursor, got %q", h.Namespace())
	}
	if got := strings.Join(h.Actions(), ","); got != "go_to_soft_begin,save_cursors" {
		t.Errorf("unexpected actions %q", got)
	}
	if !h.CanHandle("save_cursors") || h.CanHandle("restore_cursors") {
		t.Error("CanHandle does not match registrations")
	}

	adapter := handler.NewNamespaceAdapter(h)
	result := adapter.Handle(input.NewAction("go_to_soft_begin"), execctx.New())
	if result.Message != "soft" {
		t.Errorf("expected message soft, got %q", result.Message)
	}

	result = h.HandleAction(input.NewAction("restore_cursors"), execctx.New())
	if !result.IsError() {
		t.Error("expected error for unregistered action")
	}
	if !strings.Contains(result.Error.Error(), "restore_cursors") {
		t.Errorf("error should name the action: %v", result.Error)
	}
}
