package routerepo

import (
	"context"
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/core/domain/model/route"
	"medrush/internal/pkg/errs"

	"gorm.io/gorm"
)

// stopBatchSize bounds the payload of one bulk stop insert statement.
// Chunking happens inside the ambient transaction and does not weaken
// atomicity.
const stopBatchSize = 100

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRouteRepository creates a new GORM route repository.
func NewGormRouteRepository(db *gorm.DB, tracker aggregateTracker) *GormRouteRepository {
	return &GormRouteRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new route to the database.
func (r *GormRouteRepository) Add(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing route to the database.
func (r *GormRouteRepository) Update(ctx context.Context, aggregate *route.Route) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RouteDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a route by ID.
func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Route, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddStops bulk-inserts route stops in fixed-size batches.
func (r *GormRouteRepository) AddStops(ctx context.Context, stops []*route.Stop) error {
	if len(stops) == 0 {
		return nil
	}

	dtos := make([]RouteStopDTO, 0, len(stops))
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, stopFromDomain(stop))
	}

	return r.db.WithContext(ctx).CreateInBatches(&dtos, stopBatchSize).Error
}

// UpdateStops persists position changes for existing stops, keyed by stop
// identity. Every column is written so cleared optimized positions are
// nulled out.
func (r *GormRouteRepository) UpdateStops(ctx context.Context, stops []*route.Stop) error {
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return err
		}

		dto := stopFromDomain(stop)
		result := r.db.WithContext(ctx).Model(&RouteStopDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
	}

	return nil
}

// GetStops retrieves all stops of a route ordered by custom position.
func (r *GormRouteRepository) GetStops(ctx context.Context, routeID kernel.UUID) ([]*route.Stop, error) {
	if err := routeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RouteStopDTO
	if err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID.Bytes()).
		Order("custom_position").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	stops := make([]*route.Stop, 0, len(dtos))
	for _, dto := range dtos {
		stop, err := stopToDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	return stops, nil
}
