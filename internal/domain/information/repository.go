package information

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines catalog data access
type Repository interface {
	Banners(ctx context.Context) ([]Banner, error)
	Services(ctx context.Context) ([]Service, error)
	ServiceByCode(ctx context.Context, code string) (*Service, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Banners(ctx context.Context) ([]Banner, error) {
	var banners []Banner
	err := r.db.SelectContext(ctx, &banners, `
		SELECT banner_name, banner_image, description
		FROM banners
		ORDER BY created_at DESC
	`)
	return banners, err
}

func (r *repository) Services(ctx context.Context) ([]Service, error) {
	var services []Service
	err := r.db.SelectContext(ctx, &services, `
		SELECT service_code, service_name, service_icon, service_tariff
		FROM services
		ORDER BY service_code
	`)
	return services, err
}

func (r *repository) ServiceByCode(ctx context.Context, code string) (*Service, error) {
	var svc Service
	err := r.db.GetContext(ctx, &svc, `
		SELECT service_code, service_name, service_icon, service_tariff
		FROM services WHERE service_code = $1
	`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}
