package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crowddelivery/internal/adapters/out/persistence/gormerr"
	"crowddelivery/internal/core/domain/model/order"
	"crowddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "orders"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order to the database and returns it with its assigned ID.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := FromSnapshot(aggregate.Snapshot())
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, gormerr.Translate(resource, err)
	}

	return toDomain(dto)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", id))
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, gormerr.Translate(resource, err)
	}

	return toDomain(dto)
}

// Exists reports whether an order with the ID is stored.
func (r *GormOrderRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, gormerr.Translate(resource, err)
	}
	return count > 0, nil
}

// Apply executes the transition as a single conditional UPDATE. The guard becomes
// the WHERE clause, so of several concurrent callers at most one can match a row
// whose status is about to change.
func (r *GormOrderRepository) Apply(ctx context.Context, t order.Transition) (bool, error) {
	if err := t.Action.Validate(); err != nil {
		return false, err
	}
	if len(t.Guard.From) == 0 {
		return false, errs.NewValueIsRequiredError("guard statuses")
	}

	from := make([]string, 0, len(t.Guard.From))
	for _, s := range t.Guard.From {
		from = append(from, s.String())
	}

	q := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", t.OrderID).
		Where("status IN ?", from)
	if g := t.Guard; g.RiderID != nil {
		q = q.Where("rider_id = ?", *g.RiderID)
	}
	if g := t.Guard; g.MerchantID != nil {
		q = q.Where("merchant_id = ?", *g.MerchantID)
	}
	if g := t.Guard; g.DeadlineAfter != nil {
		q = q.Where("transfer_deadline > ?", g.DeadlineAfter.UTC())
	}
	if g := t.Guard; g.DeadlineDue != nil {
		q = q.Where("transfer_deadline <= ?", g.DeadlineDue.UTC())
	}

	result := q.Updates(columns(t.Effect))
	if result.Error != nil {
		return false, gormerr.Translate(resource, result.Error)
	}

	return result.RowsAffected == 1, nil
}

// ListDueForExpiry returns accepted orders whose deadline is at or before now.
func (r *GormOrderRepository) ListDueForExpiry(ctx context.Context, now time.Time) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND transfer_deadline <= ?", order.Accepted.String(), now.UTC()).
		Order("transfer_deadline ASC, id ASC"))
}

// ListAccepted returns all accepted orders, earliest deadline first.
func (r *GormOrderRepository) ListAccepted(ctx context.Context) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ?", order.Accepted.String()).
		Order("transfer_deadline ASC, id ASC"))
}

func (r *GormOrderRepository) find(q *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := q.Find(&dtos).Error; err != nil {
		return nil, gormerr.Translate(resource, err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
