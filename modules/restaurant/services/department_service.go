package services

import (
	"context"
	"time"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

type DepartmentService struct {
	repo       department.Repository
	publisher  eventbus.EventBus
	cache      *CollectionCache[department.Department]
	dateLayout string
}

func NewDepartmentService(repo department.Repository, publisher eventbus.EventBus, cacheTTL time.Duration, dateLayout string) *DepartmentService {
	return &DepartmentService{
		repo:       repo,
		publisher:  publisher,
		cache:      NewCollectionCache("departments", cacheTTL, repo.GetAll),
		dateLayout: dateLayout,
	}
}

func (s *DepartmentService) List(ctx context.Context, query string) ([]department.Department, error) {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionView); err != nil {
		return nil, err
	}
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return filtering.Filter(all, query), nil
}

// GetByID always reads through to the backend so edit forms start from fresh data.
func (s *DepartmentService) GetByID(ctx context.Context, id string) (department.Department, error) {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionView); err != nil {
		return department.Department{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, data *department.CreateDTO) error {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionCreate); err != nil {
		return err
	}
	data.Normalize()
	defer s.cache.Invalidate()
	if err := s.repo.Create(ctx, data.ToEntity()); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("department create failed")
		return err
	}
	s.publisher.Publish(department.NewCreatedEvent(*data, userType(ctx)))
	return nil
}

func (s *DepartmentService) Update(ctx context.Context, id string, data *department.UpdateDTO) error {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionUpdate); err != nil {
		return err
	}
	data.Normalize()
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	defer s.cache.Invalidate()
	if err := s.repo.Update(ctx, existing, data.Apply(existing)); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("department", id).Error("department update failed")
		return err
	}
	s.publisher.Publish(department.NewUpdatedEvent(id, *data, userType(ctx)))
	return nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionDelete); err != nil {
		return err
	}
	defer s.cache.Invalidate()
	if err := s.repo.Delete(ctx, id); err != nil {
		composables.UseLogger(ctx).WithError(err).WithField("department", id).Error("department delete failed")
		return err
	}
	s.publisher.Publish(department.NewDeletedEvent(id, userType(ctx)))
	return nil
}

func (s *DepartmentService) Export(ctx context.Context, query, format string) (*ExportFile, error) {
	if err := authorizeRestaurant(ctx, authz.DepartmentsObject, authz.ActionExport); err != nil {
		return nil, err
	}
	departments, err := s.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return render(DepartmentReport(departments, DepartmentColumns, s.dateLayout), format)
}
