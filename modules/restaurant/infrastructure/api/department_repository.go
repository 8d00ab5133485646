package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
)

const departmentsPath = "/departments"

type DepartmentRepository struct {
	client *backend.Client
}

func NewDepartmentRepository(client *backend.Client) department.Repository {
	return &DepartmentRepository{client: client}
}

func departmentPath(id string) string {
	return departmentsPath + "/" + url.PathEscape(id)
}

func (r *DepartmentRepository) GetAll(ctx context.Context) ([]department.Department, error) {
	records, err := r.client.GetCollection(ctx, departmentsPath)
	if err != nil {
		return nil, errors.Wrap(err, "fetch departments")
	}
	logger := composables.UseLogger(ctx)
	out := make([]department.Department, 0, len(records))
	for _, rec := range records {
		d, err := ToDomainDepartment(rec)
		if err != nil {
			logger.WithError(err).Warn("skipping malformed department record")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	rec, err := r.client.GetItem(ctx, departmentPath(id))
	if err != nil {
		return department.Department{}, mapNotFound(errors.Wrapf(err, "fetch department %s", id), department.ErrNotFound)
	}
	if rec == nil {
		return department.Department{}, errors.Wrapf(department.ErrNotFound, "department %s", id)
	}
	return ToDomainDepartment(rec)
}

func (r *DepartmentRepository) Create(ctx context.Context, d department.Department) error {
	if err := r.client.Mutate(ctx, http.MethodPost, departmentsPath, d.Payload()); err != nil {
		return errors.Wrap(err, "create department")
	}
	return nil
}

// MergePatch returns the RFC 7386 merge patch turning before into after, or
// nil when nothing changed. A change below a top-level field resends the
// whole field.
func MergePatch(before, after department.Department) (json.RawMessage, error) {
	original, err := json.Marshal(before.Payload())
	if err != nil {
		return nil, err
	}
	modified, err := json.Marshal(after.Payload())
	if err != nil {
		return nil, err
	}
	ops, err := jsondiff.CompareJSON(original, modified)
	if err != nil {
		return nil, errors.Wrap(err, "diff department")
	}
	if len(ops) == 0 {
		return nil, nil
	}
	var target map[string]json.RawMessage
	if err := json.Unmarshal(modified, &target); err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage, len(ops))
	for _, op := range ops {
		name := topLevelField(string(op.Path))
		if value, ok := target[name]; ok {
			fields[name] = value
		} else {
			fields[name] = json.RawMessage("null")
		}
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(original, patch)
	if err != nil {
		return nil, errors.Wrap(err, "apply merge patch")
	}
	if !jsonpatch.Equal(merged, modified) {
		return nil, errors.Errorf("merge patch %s does not reproduce the update", patch)
	}
	return patch, nil
}

// topLevelField returns the first reference token of a JSON pointer.
func topLevelField(pointer string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(pointer, "/"), "/")
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(name)
}

func (r *DepartmentRepository) Update(ctx context.Context, before, after department.Department) error {
	patch, err := MergePatch(before, after)
	if err != nil {
		return err
	}
	logger := composables.UseLogger(ctx).WithField("department", before.ID())
	if patch == nil {
		logger.Debug("department unchanged, skipping update")
		return nil
	}
	logger.WithFields(logrus.Fields{"patch": string(patch)}).Info("updating department")
	if err := r.client.Mutate(ctx, http.MethodPut, departmentPath(before.ID()), patch); err != nil {
		return mapNotFound(errors.Wrapf(err, "update department %s", before.ID()), department.ErrNotFound)
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Mutate(ctx, http.MethodDelete, departmentPath(id), nil); err != nil {
		return mapNotFound(errors.Wrapf(err, "delete department %s", id), department.ErrNotFound)
	}
	return nil
}
