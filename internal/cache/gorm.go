package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// CachedCart is one cached cart snapshot, one row per session. Items holds
// the serialized line array; every save overwrites it in full.
type CachedCart struct {
	SessionID string         `gorm:"primaryKey;column:session_id"`
	Items     datatypes.JSON `gorm:"column:items"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (CachedCart) TableName() string { return "cached_cart" }

type gormStore struct {
	db        *gorm.DB
	sessionID string
	log       *logger.Logger
}

// NewSQLite opens the embedded default cache backend at path.
func NewSQLite(path, sessionID string, log *logger.Logger) (Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache: %w", err)
	}
	return newGormStore(db, sessionID, log)
}

// NewPostgres opens the shared cache backend for server-hosted storefront
// deployments where sessions outlive a single process.
func NewPostgres(dsn, sessionID string, log *logger.Logger) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres cache: %w", err)
	}
	return newGormStore(db, sessionID, log)
}

func newGormStore(db *gorm.DB, sessionID string, log *logger.Logger) (Store, error) {
	if err := db.AutoMigrate(&CachedCart{}); err != nil {
		return nil, fmt.Errorf("migrate cart cache: %w", err)
	}
	return &gormStore{
		db:        db,
		sessionID: sessionID,
		log:       log.With("component", "CartCache"),
	}, nil
}

func (g *gormStore) Load(ctx context.Context) ([]types.CartItem, error) {
	var row CachedCart
	err := g.db.WithContext(ctx).
		Where("session_id = ?", g.sessionID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []types.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []types.CartItem
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			g.log.Warn("discarding unreadable cached cart", "error", err)
			return []types.CartItem{}, nil
		}
	}
	if items == nil {
		items = []types.CartItem{}
	}
	return items, nil
}

func (g *gormStore) Save(ctx context.Context, items []types.CartItem) error {
	if items == nil {
		items = []types.CartItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	row := CachedCart{
		SessionID: g.sessionID,
		Items:     datatypes.JSON(payload),
		UpdatedAt: time.Now(),
	}
	return g.db.WithContext(ctx).Save(&row).Error
}

func (g *gormStore) Clear(ctx context.Context) error {
	return g.db.WithContext(ctx).
		Delete(&CachedCart{}, "session_id = ?", g.sessionID).Error
}
