package assetsvc

import (
	"context"
	"sync"

	"github.com/littleheartschool/backend/core/content"
)

// dummyHost records deletions in memory; used in DEV and tests.
type dummyHost struct {
	mu      sync.Mutex
	deleted []string
}

var _ content.AssetHost = (*dummyHost)(nil)

func NewDummyHost() *dummyHost { return &dummyHost{} }

func (h *dummyHost) DeleteAsset(_ context.Context, publicID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deleted = append(h.deleted, publicID)
	return nil
}

func (h *dummyHost) Deleted() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.deleted...)
}
