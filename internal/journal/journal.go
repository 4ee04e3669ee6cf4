// Package journal records the receipts issued by a kiosk session.
package journal

import (
	"fmt"

	"kiosk/internal/models"
	"kiosk/internal/ordering"

	"github.com/jinzhu/gorm"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// MemoryDSN keeps the journal for the lifetime of the process only
const MemoryDSN = ":memory:"

// Journal stores checkout receipts
type Journal struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn and migrates the schema
func Open(dsn string) (*Journal, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := gorm.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open journal %q: %w", dsn, err)
	}
	// every connection to :memory: is a separate database
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)

	if err := db.AutoMigrate(&models.Receipt{}, &models.ReceiptLine{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record stores a receipt and its lines in one transaction
func (j *Journal) Record(r ordering.Receipt) error {
	tx := j.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin journal transaction: %w", tx.Error)
	}

	header := models.Receipt{
		ReceiptID: r.ID,
		Total:     r.Total,
		IssuedAt:  r.IssuedAt,
	}
	if err := tx.Create(&header).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("record receipt %s: %w", r.ID, err)
	}
	for _, bl := range r.Lines {
		line := models.ReceiptLine{
			ReceiptID: r.ID,
			Dish:      bl.Dish,
			Quantity:  bl.Quantity,
			UnitPrice: bl.UnitPrice,
		}
		if err := tx.Create(&line).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("record receipt line %s/%s: %w", r.ID, bl.Dish, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit receipt %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns up to limit receipts, newest first, with their lines
func (j *Journal) Recent(limit int) ([]models.Receipt, error) {
	var receipts []models.Receipt
	err := j.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	}).Order("issued_at desc, id desc").Limit(limit).Find(&receipts).Error
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return receipts, nil
}

// Totals returns the number of receipts and the revenue they add up to
func (j *Journal) Totals() (count int, revenue int, err error) {
	row := j.db.Model(&models.Receipt{}).Select("COUNT(*), COALESCE(SUM(total), 0)").Row()
	if err := row.Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("sum receipts: %w", err)
	}
	return count, revenue, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
