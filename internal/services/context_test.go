package services_test

import (
	"context"
	"testing"

	"movielog/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithOperation(ctx, "log")
	ctx = services.WithTitle(ctx, "Heat")
	ctx = services.WithRequestID(ctx, "req-123")

	if op, ok := services.OperationFromContext(ctx); !ok || op != "log" {
		t.Fatalf("unexpected operation: %v %v", op, ok)
	}
	if title, ok := services.TitleFromContext(ctx); !ok || title != "Heat" {
		t.Fatalf("unexpected title: %v %v", title, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithTitle(ctx, "")
	ctx = services.WithOperation(ctx, "")
	if _, ok := services.TitleFromContext(ctx); ok {
		t.Fatal("expected no title value")
	}
	if _, ok := services.OperationFromContext(ctx); ok {
		t.Fatal("expected no operation value")
	}
}
