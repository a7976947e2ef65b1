package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"immoinvest/server/internal/models"
	"immoinvest/server/internal/portfolio"
)

// PortfolioRecord is the row layout of a portfolio. Input and output are stored as
// JSON text; an empty OutputJSON marks a portfolio awaiting calculation.
type PortfolioRecord struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"index;not null"`
	Name       string    `gorm:"not null"`
	Address    string
	PostalCode string
	InputJSON  string    `gorm:"column:input_json;type:text;not null"`
	OutputJSON string    `gorm:"column:output_json;type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false"`
}

func (PortfolioRecord) TableName() string {
	return "portfolios"
}

func toRecord(p *models.Portfolio) (PortfolioRecord, error) {
	input, err := json.Marshal(p.Input)
	if err != nil {
		return PortfolioRecord{}, fmt.Errorf("failed to encode input: %w", err)
	}

	var output []byte
	if p.Output != nil {
		output, err = json.Marshal(p.Output)
		if err != nil {
			return PortfolioRecord{}, fmt.Errorf("failed to encode output: %w", err)
		}
	}

	return PortfolioRecord{
		ID:         p.ID,
		UserID:     p.UserID,
		Name:       p.Name,
		Address:    p.Address,
		PostalCode: p.PostalCode,
		InputJSON:  string(input),
		OutputJSON: string(output),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}, nil
}

func (r PortfolioRecord) toModel() (models.Portfolio, error) {
	p := models.Portfolio{
		ID:         r.ID,
		UserID:     r.UserID,
		Name:       r.Name,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(r.InputJSON), &p.Input); err != nil {
		return models.Portfolio{}, fmt.Errorf("failed to decode input of %s: %w", r.ID, err)
	}
	if r.OutputJSON != "" {
		var output models.PropertyOutput
		if err := json.Unmarshal([]byte(r.OutputJSON), &output); err != nil {
			return models.Portfolio{}, fmt.Errorf("failed to decode output of %s: %w", r.ID, err)
		}
		p.Output = &output
	}
	return p, nil
}

func toModels(records []PortfolioRecord) ([]models.Portfolio, error) {
	portfolios := make([]models.Portfolio, 0, len(records))
	for _, r := range records {
		p, err := r.toModel()
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, nil
}

// UpsertPortfolios inserts or replaces a batch of portfolios using tx.
func UpsertPortfolios(tx *gorm.DB, batch []*models.Portfolio) error {
	if len(batch) == 0 {
		return nil
	}

	records := make([]PortfolioRecord, 0, len(batch))
	for _, p := range batch {
		record, err := toRecord(p)
		if err != nil {
			return err
		}
		records = append(records, record)
	}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&records).Error
}

func (d *Database) List(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var records []PortfolioRecord
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios: %w", err)
	}
	return toModels(records)
}

func (d *Database) Get(ctx context.Context, userID, id string) (models.Portfolio, error) {
	var record PortfolioRecord
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Portfolio{}, portfolio.ErrNotFound
	}
	if err != nil {
		return models.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}
	return record.toModel()
}

func (d *Database) Save(ctx context.Context, p *models.Portfolio) error {
	return UpsertPortfolios(d.db.WithContext(ctx), []*models.Portfolio{p})
}

func (d *Database) Delete(ctx context.Context, userID, id string) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&PortfolioRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete portfolio: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return portfolio.ErrNotFound
	}
	return nil
}

// SaveBatch upserts the whole batch in one transaction.
func (d *Database) SaveBatch(ctx context.Context, batch []*models.Portfolio) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := UpsertPortfolios(tx, batch); err != nil {
			return fmt.Errorf("failed to upsert portfolios batch: %w", err)
		}
		return nil
	})
}

// UpdateOutputs writes recalculated outputs in one transaction. A row is only touched
// while its updated_at still matches the snapshot.
func (d *Database) UpdateOutputs(ctx context.Context, updates []portfolio.OutputUpdate) (int, error) {
	written := 0
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		written = 0
		for _, u := range updates {
			var record PortfolioRecord
			err := tx.Where("id = ? AND user_id = ?", u.ID, u.UserID).First(&record).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to query portfolio %s: %w", u.ID, err)
			}
			if !record.UpdatedAt.Equal(u.Snapshot) {
				continue
			}

			output, err := json.Marshal(u.Output)
			if err != nil {
				return fmt.Errorf("failed to encode output of %s: %w", u.ID, err)
			}
			err = tx.Model(&PortfolioRecord{}).
				Where("id = ?", u.ID).
				Updates(map[string]any{
					"output_json": string(output),
					"updated_at":  u.UpdatedAt,
				}).Error
			if err != nil {
				return fmt.Errorf("failed to update output of %s: %w", u.ID, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (d *Database) ListWithoutOutput(ctx context.Context, limit int) ([]*models.Portfolio, error) {
	query := d.db.WithContext(ctx).
		Where("output_json = ''").
		Order("created_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []PortfolioRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query pending portfolios: %w", err)
	}

	portfolios, err := toModels(records)
	if err != nil {
		return nil, err
	}
	pending := make([]*models.Portfolio, 0, len(portfolios))
	for i := range portfolios {
		pending = append(pending, &portfolios[i])
	}
	return pending, nil
}

var _ portfolio.Store = (*Database)(nil)
