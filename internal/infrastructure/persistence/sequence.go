package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexuscrm/backend/internal/domain/numbering"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentSequence is the per-series, per-year counter row behind document
// numbering. The row is locked for the duration of the owning document's
// transaction so two concurrent creates can never draw the same number.
type DocumentSequence struct {
	ID        int64            `gorm:"primaryKey;autoIncrement"`
	Series    numbering.Series `gorm:"size:10;not null;uniqueIndex:idx_document_sequences_series_year"`
	Year      int              `gorm:"not null;uniqueIndex:idx_document_sequences_series_year"`
	LastValue int64            `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName overrides the default pluralization
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// seriesTables maps each series to the document table whose numbers seed the
// counter when a {series, year} row does not exist yet. Seeding from the
// documents themselves keeps numbering continuous for databases that predate
// the counter table.
var seriesTables = map[numbering.Series]string{
	numbering.SeriesOpportunity: "opportunities",
	numbering.SeriesOffer:       "offers",
	numbering.SeriesSaleOrder:   "sale_orders",
	numbering.SeriesInvoice:     "invoices",
}

// SequenceAllocator hands out document numbers from the document_sequences
// table. NextInTx must run inside the transaction that inserts the document;
// a rolled-back transaction releases the number along with everything else.
type SequenceAllocator struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewSequenceAllocator creates a new SequenceAllocator
func NewSequenceAllocator(db *gorm.DB, logger *zap.Logger) *SequenceAllocator {
	return &SequenceAllocator{
		db:     db,
		logger: logger.Named("sequence"),
		now:    time.Now,
	}
}

// Next allocates a number in its own transaction. Prefer NextInTx when the
// allocation belongs to a larger unit of work.
func (a *SequenceAllocator) Next(ctx context.Context, series numbering.Series) (string, error) {
	var number string
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := a.NextInTx(tx, series)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	return number, err
}

// NextInTx allocates the next number for the series within the given
// transaction, locking the counter row until the transaction ends
func (a *SequenceAllocator) NextInTx(tx *gorm.DB, series numbering.Series) (string, error) {
	if !series.IsValid() {
		return "", fmt.Errorf("unknown document series %q", series)
	}
	year := a.now().Year()

	seq, err := a.lockRow(tx, series, year)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		seq, err = a.seedRow(tx, series, year)
		if err != nil {
			return "", err
		}
	}

	seq.LastValue++
	seq.UpdatedAt = a.now()
	if err := tx.Save(seq).Error; err != nil {
		return "", err
	}

	return numbering.Format(series, year, seq.LastValue), nil
}

// lockRow selects the counter row FOR UPDATE. SQLite serializes write
// transactions on its own and rejects the locking clause, so it is only
// added on postgres.
func (a *SequenceAllocator) lockRow(tx *gorm.DB, series numbering.Series, year int) (*DocumentSequence, error) {
	query := tx.Model(&DocumentSequence{})
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var seq DocumentSequence
	if err := query.Where("series = ? AND year = ?", series, year).First(&seq).Error; err != nil {
		return nil, err
	}
	return &seq, nil
}

// seedRow creates the counter row for a {series, year} that has none yet,
// starting from the highest number already present in the series' document
// table. A concurrent seed loses the race on the unique index and retries
// the locked read.
func (a *SequenceAllocator) seedRow(tx *gorm.DB, series numbering.Series, year int) (*DocumentSequence, error) {
	highWater, err := a.highWaterMark(tx, series, year)
	if err != nil {
		return nil, err
	}

	seq := &DocumentSequence{
		Series:    series,
		Year:      year,
		LastValue: highWater,
		UpdatedAt: a.now(),
	}
	if err := tx.Create(seq).Error; err != nil {
		// Someone else seeded the row first; fall back to the locked read
		existing, lockErr := a.lockRow(tx, series, year)
		if lockErr != nil {
			return nil, err
		}
		return existing, nil
	}
	return seq, nil
}

// highWaterMark scans the series' document table for the largest sequence
// already issued this year. Numbers that do not parse count as zero so one
// malformed row cannot wedge numbering for the whole series.
func (a *SequenceAllocator) highWaterMark(tx *gorm.DB, series numbering.Series, year int) (int64, error) {
	table, ok := seriesTables[series]
	if !ok {
		return 0, fmt.Errorf("no document table registered for series %q", series)
	}

	var numbers []string
	prefix := numbering.Prefix(series, year)
	err := tx.Table(table).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		Limit(50).
		Pluck("number", &numbers).Error
	if err != nil {
		return 0, err
	}

	var highest int64
	for _, number := range numbers {
		value, ok := numbering.ParseSequence(number)
		if !ok {
			a.logger.Warn("unparsable document number ignored while seeding sequence",
				zap.String("series", series.String()),
				zap.Int("year", year),
				zap.String("number", number),
			)
			continue
		}
		if value > highest {
			highest = value
		}
	}
	return highest, nil
}

// Ensure SequenceAllocator implements numbering.Generator
var _ numbering.Generator = (*SequenceAllocator)(nil)
