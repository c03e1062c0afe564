package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/listing"
	"jobboard/internal/domain/savedmark"

	"github.com/google/uuid"
)

type PostgresSavedRepository struct {
	db database.DB
}

func NewPostgresSavedRepository(db database.DB) *PostgresSavedRepository {
	return &PostgresSavedRepository{db: db}
}

func (r *PostgresSavedRepository) SelectOne(ctx context.Context, userID, listingID uuid.UUID) (savedmark.SavedMark, bool, error) {
	var m savedmark.SavedMark
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_id, created_at FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, listingID,
	)
	if err := row.Scan(&m.ID, &m.UserID, &m.ListingID, &m.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return savedmark.SavedMark{}, false, nil
		}
		return savedmark.SavedMark{}, false, err
	}
	return m, true, nil
}

func (r *PostgresSavedRepository) Insert(ctx context.Context, userID, listingID uuid.UUID) (savedmark.SavedMark, error) {
	m := savedmark.SavedMark{ID: uuid.New(), UserID: userID, ListingID: listingID}
	row := r.db.QueryRow(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id) VALUES ($1, $2, $3) RETURNING created_at`,
		m.ID, m.UserID, m.ListingID,
	)
	if err := row.Scan(&m.CreatedAt); err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return savedmark.SavedMark{}, savedmark.ErrDuplicate
		case database.IsForeignKeyViolation(err):
			return savedmark.SavedMark{}, savedmark.ErrListingNotFound
		}
		return savedmark.SavedMark{}, err
	}
	return m, nil
}

func (r *PostgresSavedRepository) Delete(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, listingID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresSavedRepository) Listings(ctx context.Context, userID uuid.UUID) ([]listing.Listing, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+listingColumns+`
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 WHERE s.user_id = $1
		 ORDER BY s.created_at DESC, j.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *PostgresSavedRepository) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
