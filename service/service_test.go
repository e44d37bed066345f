package service

import (
	"context"
	"testing"
	"time"

	"github.com/viant/gist/transport"
)

func TestNewService_TransportAndTimeout(t *testing.T) {
	cfg := &Config{API: APIConfig{TimeoutSeconds: 7}}

	calls := 0
	custom := transport.Func(func(ctx context.Context, req *transport.Request, out any) error {
		calls++
		return nil
	})
	svc, err := NewService(WithTransport(custom), WithConfig(cfg))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if _, err := svc.Get(context.Background(), GetRequest{ID: "abc"}); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls != 1 {
		t.Fatalf("explicit transport must be kept, calls=%d", calls)
	}

	svc, err = NewService(WithConfig(cfg))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	httpTransport, ok := svc.transport.(*transport.HTTP)
	if !ok {
		t.Fatalf("expected HTTP transport, got %T", svc.transport)
	}
	if httpTransport.Client.Timeout != 7*time.Second {
		t.Fatalf("timeout mismatch: %v", httpTransport.Client.Timeout)
	}
}
