package repository

import (
	"context"
	"errors"

	"adclick_webapp/internal/domain"
	"adclick_webapp/internal/money"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdNotFound = errors.New("ad not found")

type AdRepository struct {
	db *pgxpool.Pool
}

func NewAdRepository(db *pgxpool.Pool) *AdRepository {
	return &AdRepository{db: db}
}

// Create inserts a new ad. New ads start active.
func (r *AdRepository) Create(ctx context.Context, title string, price money.Amount, imageURL string) (*domain.Ad, error) {
	ad := &domain.Ad{Title: title, Price: price, ImageURL: imageURL, IsActive: true}
	err := r.db.QueryRow(ctx, `
		INSERT INTO ads (title, price, image_url, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, created_at
	`, title, price.String(), imageURL).Scan(&ad.ID, &ad.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ad, nil
}

// GetByID retrieves an ad by id.
func (r *AdRepository) GetByID(ctx context.Context, id int64) (*domain.Ad, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, price, image_url, is_active, created_at
		FROM ads WHERE id = $1
	`, id)
	return scanAd(row)
}

// ListActive returns all active ads ordered by id. The ordering is the
// round-robin rotation base, so it must be stable.
func (r *AdRepository) ListActive(ctx context.Context) ([]domain.Ad, error) {
	return r.list(ctx, `
		SELECT id, title, price, image_url, is_active, created_at
		FROM ads WHERE is_active = true ORDER BY id
	`)
}

// List returns the full catalog, active or not, ordered by id.
func (r *AdRepository) List(ctx context.Context) ([]domain.Ad, error) {
	return r.list(ctx, `
		SELECT id, title, price, image_url, is_active, created_at
		FROM ads ORDER BY id
	`)
}

// SetActive toggles an ad in or out of the rotation.
func (r *AdRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE ads SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdNotFound
	}
	return nil
}

func (r *AdRepository) list(ctx context.Context, query string) ([]domain.Ad, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ad
	for rows.Next() {
		ad, err := scanAdRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ad)
	}
	return result, rows.Err()
}

func scanAd(row pgx.Row) (*domain.Ad, error) {
	ad, err := scanAdRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	return ad, nil
}

func scanAdRow(row pgx.Row) (*domain.Ad, error) {
	var (
		ad    domain.Ad
		price string
	)
	if err := row.Scan(&ad.ID, &ad.Title, &price, &ad.ImageURL, &ad.IsActive, &ad.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if ad.Price, err = money.Parse(price); err != nil {
		return nil, err
	}
	return &ad, nil
}
