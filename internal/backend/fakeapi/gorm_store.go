package fakeapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type productRow struct {
	ID          string  `gorm:"primaryKey;type:varchar(64)"`
	Num         int64   `gorm:"not null;index:ix_mock_products_num"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Category    string  `gorm:"type:varchar(128);not null"`
	Unit        string  `gorm:"type:varchar(32);not null"`
	OriginPrice float64 `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	IsEnabled   int     `gorm:"not null;default:0"`
	Description string  `gorm:"type:text"`
	Content     string  `gorm:"type:text"`
	ImageURL    string  `gorm:"type:varchar(1024)"`
	ImagesURL   datatypes.JSONSlice[string]
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productRow) TableName() string { return "mock_products" }

// OpenDB opens MySQL for "user:pass@tcp(host)/db" style DSNs and Postgres
// for "postgres://" URLs or key=value DSNs.
func OpenDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		dial = postgres.Open(dsn)
	default:
		dial = mysql.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("fakeapi: open db: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the products table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&productRow{})
}

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) List(ctx context.Context) ([]Product, error) {
	var rows []productRow
	if err := s.db.WithContext(ctx).Order("num ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.product())
	}
	return out, nil
}

func (s *GormStore) Create(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = newID()
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&productRow{}).Select("COALESCE(MAX(num), 0)").Scan(&last).Error; err != nil {
			return err
		}
		p.Num = last + 1
		row := rowOf(p)
		return tx.Create(&row).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Product{}, fmt.Errorf("fakeapi: product %s exists: %w", p.ID, err)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *GormStore) Update(ctx context.Context, id string, p Product) error {
	row := rowOf(p)
	res := s.db.WithContext(ctx).Model(&productRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":        row.Title,
			"category":     row.Category,
			"unit":         row.Unit,
			"origin_price": row.OriginPrice,
			"price":        row.Price,
			"is_enabled":   row.IsEnabled,
			"description":  row.Description,
			"content":      row.Content,
			"image_url":    row.ImageURL,
			"images_url":   row.ImagesURL,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&productRow{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func rowOf(p Product) productRow {
	images := p.ImagesURL
	if images == nil {
		images = []string{}
	}
	return productRow{
		ID:          p.ID,
		Num:         p.Num,
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		OriginPrice: p.OriginPrice,
		Price:       p.Price,
		IsEnabled:   p.IsEnabled,
		Description: p.Description,
		Content:     p.Content,
		ImageURL:    p.ImageURL,
		ImagesURL:   datatypes.JSONSlice[string](images),
	}
}

func (r productRow) product() Product {
	return Product{
		ID:          r.ID,
		Num:         r.Num,
		Title:       r.Title,
		Category:    r.Category,
		Unit:        r.Unit,
		OriginPrice: r.OriginPrice,
		Price:       r.Price,
		IsEnabled:   r.IsEnabled,
		Description: r.Description,
		Content:     r.Content,
		ImageURL:    r.ImageURL,
		ImagesURL:   append([]string{}, r.ImagesURL...),
	}
}
