package directory

import (
	"context"

	directoryerrors "obracheck/internal/directory/errors"
	"obracheck/internal/obraapi"
)

//go:generate mockgen -source=directory_repo.go -destination=mock/directory_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]WorkerRef, error)
}

type repository struct {
	api obraapi.Client
}

func NewRepository(api obraapi.Client) Repository {
	return &repository{api: api}
}

func (r *repository) FindAll(ctx context.Context) ([]WorkerRef, error) {
	rows, err := r.api.ListWorkers(ctx)
	if err != nil {
		return nil, directoryerrors.ErrFetchDirectory.WithCause(err)
	}

	workers := make([]WorkerRef, len(rows))
	for i, row := range rows {
		workers[i] = WorkerRef{
			ID:   row.ID,
			Name: row.Name,
			CI:   row.CI,
		}
		if row.Site != nil {
			workers[i].SiteID = row.Site.ID
		}
	}
	return workers, nil
}
