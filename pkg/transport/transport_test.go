package transport

import (
	"context"
	"sync"
)

// fakeDispatcher guarda os payloads e correlation ids recebidos.
type fakeDispatcher struct {
	mu       sync.Mutex
	payloads []string
	corrIDs  []interface{}
	active   bool
}

func (f *fakeDispatcher) OnPayload(ctx context.Context, payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, string(payload))
	f.corrIDs = append(f.corrIDs, ctx.Value(ContextKeyCorrID))
}

func (f *fakeDispatcher) Active() bool {
	return f.active
}

func (f *fakeDispatcher) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.payloads...)
}

func stringPtr(s string) *string {
	return &s
}
