package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apsentry/apsentry/internal/core/domain"
	"github.com/apsentry/apsentry/internal/core/ports"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// SQLiteAdapter implements ports.Storage using GORM and SQLite.
type SQLiteAdapter struct {
	db *gorm.DB
}

// AccessPointModel is the GORM model for access point records.
type AccessPointModel struct {
	BSSID            string `gorm:"primaryKey;column:bssid"`
	SSID             string `gorm:"column:ssid"`
	RSSI             int    `gorm:"column:rssi"`
	Channel          int
	Encryption       string
	FirstSeen        time.Time
	LastSeen         time.Time
	ObservationCount int
	History          string // JSON encoded []domain.ObservationSample
	Status           string
	SourceDeviceID   string
}

// NewSQLiteAdapter initializes the database and migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, fmt.Errorf("register tracing plugin: %w", err)
	}

	if err := db.AutoMigrate(&AccessPointModel{}); err != nil {
		return nil, err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_access_points_status ON access_point_models(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_access_points_last_seen ON access_point_models(last_seen)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_access_points_ssid ON access_point_models(ssid)")

	return &SQLiteAdapter{db: db}, nil
}

// GetAccessPoint retrieves a record by BSSID.
func (a *SQLiteAdapter) GetAccessPoint(ctx context.Context, bssid string) (*domain.AccessPointRecord, error) {
	var model AccessPointModel
	err := a.db.WithContext(ctx).First(&model, "bssid = ?", bssid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	record := toDomain(model)
	return &record, nil
}

// SaveAccessPoint creates or replaces the record keyed by BSSID.
func (a *SQLiteAdapter) SaveAccessPoint(ctx context.Context, record domain.AccessPointRecord) error {
	model := toModel(record)
	return a.db.WithContext(ctx).Save(&model).Error
}

// GetAllAccessPoints retrieves all stored records.
func (a *SQLiteAdapter) GetAllAccessPoints(ctx context.Context) ([]domain.AccessPointRecord, error) {
	var models []AccessPointModel
	if err := a.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]domain.AccessPointRecord, len(models))
	for i, m := range models {
		records[i] = toDomain(m)
	}
	return records, nil
}

// sortColumns whitelists the fields the list endpoint may order by.
var sortColumns = map[string]string{
	"last_seen":         "last_seen",
	"first_seen":        "first_seen",
	"ssid":              "ssid",
	"rssi":              "rssi",
	"observation_count": "observation_count",
}

// FindAccessPoints retrieves records matching the filter criteria.
func (a *SQLiteAdapter) FindAccessPoints(ctx context.Context, filter domain.NetworkFilter) ([]domain.AccessPointRecord, error) {
	query := a.db.WithContext(ctx)

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("ssid LIKE ? OR bssid LIKE ?", term, term)
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "last_seen"
	}
	direction := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []AccessPointModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	records := make([]domain.AccessPointRecord, len(models))
	for i, m := range models {
		records[i] = toDomain(m)
	}
	return records, nil
}

func (a *SQLiteAdapter) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ensure interface compliance
var _ ports.Storage = (*SQLiteAdapter)(nil)
