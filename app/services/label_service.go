package services

import (
	"context"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/shashiranjanraj/tillpoint/app/models"
	"github.com/shashiranjanraj/tillpoint/app/repositories"
	"github.com/shashiranjanraj/tillpoint/pkg/crypt"
	"github.com/shashiranjanraj/tillpoint/pkg/logger"
	"github.com/shashiranjanraj/tillpoint/pkg/storage"
	"github.com/shashiranjanraj/tillpoint/pkg/workerpool"
	"gorm.io/gorm"
)

const qrSize = 256 // pixels, fits standard 1.5in thermal labels

// LabelService renders QR code labels for items and stores the PNGs on the
// configured storage disk (local or s3), so the register can print or
// download them later.
type LabelService struct {
	items *repositories.ItemRepository
	pool  *workerpool.Pool
}

func NewLabelService(db *gorm.DB) *LabelService {
	return &LabelService{
		items: repositories.NewItemRepository(db),
		pool:  workerpool.New(4),
	}
}

// QRCode renders the item's SKU as a PNG, storing it on first use.
func (s *LabelService) QRCode(ctx context.Context, itemID uint) ([]byte, error) {
	item, err := s.items.Find(ctx, itemID)
	if err != nil {
		return nil, ErrItemNotFound
	}
	return s.render(item)
}

// RenderBatch renders labels for all given items concurrently and returns
// the storage paths. Individual failures are logged and skipped so one bad
// item does not sink the batch.
func (s *LabelService) RenderBatch(ctx context.Context, itemIDs []uint) ([]string, error) {
	paths := make([]string, 0, len(itemIDs))
	results := make(chan string, len(itemIDs))

	for _, id := range itemIDs {
		id := id
		err := s.pool.Submit(func() {
			item, err := s.items.Find(ctx, id)
			if err != nil {
				logger.Warn("labels: skip missing item", "item_id", id)
				results <- ""
				return
			}
			if _, err := s.render(item); err != nil {
				logger.Error("labels: render failed", "item_id", id, "error", err)
				results <- ""
				return
			}
			results <- labelPath(item.SKU)
		})
		if err != nil {
			return nil, fmt.Errorf("labels: submit render: %w", err)
		}
	}

	for range itemIDs {
		if p := <-results; p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// DownloadToken mints a short-lived encrypted token granting access to one
// label PNG without an Authorization header, so <img> tags can load it.
func (s *LabelService) DownloadToken(itemID uint) (string, error) {
	return crypt.EncryptJSON(labelToken{
		ItemID:    itemID,
		ExpiresAt: time.Now().Add(15 * time.Minute).Unix(),
	})
}

// ResolveToken validates a download token and returns the item ID it grants.
func (s *LabelService) ResolveToken(token string) (uint, error) {
	var t labelToken
	if err := crypt.DecryptJSON(token, &t); err != nil {
		return 0, fmt.Errorf("labels: bad token: %w", err)
	}
	if time.Now().Unix() > t.ExpiresAt {
		return 0, fmt.Errorf("labels: token expired")
	}
	return t.ItemID, nil
}

type labelToken struct {
	ItemID    uint  `json:"itemId"`
	ExpiresAt int64 `json:"exp"`
}

// render returns the cached PNG from storage, generating and storing it on
// miss.
func (s *LabelService) render(item *models.InventoryItem) ([]byte, error) {
	path := labelPath(item.SKU)
	if storage.Exists(path) {
		return storage.Get(path)
	}

	png, err := qrcode.Encode(item.SKU, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("labels: encode qr for %s: %w", item.SKU, err)
	}

	if err := storage.Put(path, png); err != nil {
		return nil, fmt.Errorf("labels: store %s: %w", path, err)
	}
	return png, nil
}

func labelPath(sku string) string {
	return "labels/" + sku + ".png"
}
