package marketplace

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/fuyurina/sellerhub/internal/models"
)

// Directory resolves shop metadata for payload enrichment. Backed by a
// cached snapshot so every chat message does not hit the database.
type Directory interface {
	ShopName(ctx context.Context, shopID int64) (string, error)
	AutoShipEnabled(ctx context.Context, shopID int64) (bool, error)
}

// DBDirectory serves shop lookups from a TTL-cached snapshot of the
// shops table.
type DBDirectory struct {
	db  *gorm.DB
	ttl time.Duration

	mu        sync.RWMutex
	shops     map[int64]models.Shop
	fetchedAt time.Time
}

func NewDBDirectory(db *gorm.DB, ttl time.Duration) *DBDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DBDirectory{
		db:  db,
		ttl: ttl,
	}
}

func (d *DBDirectory) ShopName(ctx context.Context, shopID int64) (string, error) {
	shop, err := d.lookup(ctx, shopID)
	if err != nil {
		return "", err
	}
	return shop.ShopName, nil
}

func (d *DBDirectory) AutoShipEnabled(ctx context.Context, shopID int64) (bool, error) {
	shop, err := d.lookup(ctx, shopID)
	if err != nil {
		return false, err
	}
	return shop.AutoShip, nil
}

func (d *DBDirectory) lookup(ctx context.Context, shopID int64) (models.Shop, error) {
	d.mu.RLock()
	fresh := time.Since(d.fetchedAt) < d.ttl && d.shops != nil
	shop, ok := d.shops[shopID]
	d.mu.RUnlock()

	if fresh && ok {
		return shop, nil
	}
	if fresh {
		// Snapshot is current but the shop is unknown
		return models.Shop{ShopID: shopID}, nil
	}

	if err := d.refresh(ctx); err != nil {
		return models.Shop{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if shop, ok := d.shops[shopID]; ok {
		return shop, nil
	}
	return models.Shop{ShopID: shopID}, nil
}

func (d *DBDirectory) refresh(ctx context.Context) error {
	var shops []models.Shop
	if err := d.db.WithContext(ctx).Find(&shops).Error; err != nil {
		return err
	}

	snapshot := make(map[int64]models.Shop, len(shops))
	for _, shop := range shops {
		snapshot[shop.ShopID] = shop
	}

	d.mu.Lock()
	d.shops = snapshot
	d.fetchedAt = time.Now()
	d.mu.Unlock()
	return nil
}
