package repository

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/database"
	"jobboard/internal/domain/listing"

	"github.com/google/uuid"
)

const listingColumns = `j.id, j.title, j.company, j.description, j.location, j.job_type, j.user_id, j.created_at, j.updated_at`

type PostgresListingRepository struct {
	db database.DB
}

func NewPostgresListingRepository(db database.DB) *PostgresListingRepository {
	return &PostgresListingRepository{db: db}
}

func (r *PostgresListingRepository) Select(ctx context.Context, p listing.Predicate, limit int) ([]listing.Listing, error) {
	where, args := whereClause(p, nil)

	q := `SELECT ` + listingColumns + ` FROM jobs j` + where + orderNewestFirst
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func (r *PostgresListingRepository) SelectOne(ctx context.Context, p listing.Predicate) (listing.Listing, error) {
	where, args := whereClause(p, nil)
	row := r.db.QueryRow(ctx, `SELECT `+listingColumns+` FROM jobs j`+where+orderNewestFirst+` LIMIT 1`, args...)

	l, err := scanListing(row)
	if err != nil {
		if database.IsNoRows(err) {
			return listing.Listing{}, listing.ErrNotFound
		}
		return listing.Listing{}, err
	}
	return l, nil
}

func (r *PostgresListingRepository) Insert(ctx context.Context, owner uuid.UUID, f listing.Fields) (listing.Listing, error) {
	l := listing.Listing{
		ID:          uuid.New(),
		Title:       f.Title,
		Company:     f.Company,
		Description: f.Description,
		Location:    f.Location,
		Category:    f.Category,
		OwnerID:     owner,
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (id, title, company, description, location, job_type, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		l.ID, l.Title, l.Company, l.Description, l.Location, string(l.Category), l.OwnerID,
	)
	if err := row.Scan(&l.CreatedAt, &l.UpdatedAt); err != nil {
		return listing.Listing{}, writeError(err)
	}
	return l, nil
}

func (r *PostgresListingRepository) Update(ctx context.Context, p listing.Predicate, f listing.Fields) (int64, error) {
	if p.ID == nil {
		return 0, listing.ErrUnscopedMutation
	}

	args := []any{f.Title, f.Company, f.Description, f.Location, string(f.Category)}
	where, args := whereClause(p, args)
	n, err := r.db.Exec(ctx,
		`UPDATE jobs j
		 SET title = $1, company = $2, description = $3, location = $4, job_type = $5, updated_at = now()`+where,
		args...,
	)
	if err != nil {
		return 0, writeError(err)
	}
	return n, nil
}

// writeError maps a CHECK violation to ErrInvalidCategory. job_type is the
// only checked column a write can set.
func writeError(err error) error {
	if database.IsCheckViolation(err) {
		return fmt.Errorf("%w: %w", listing.ErrInvalidCategory, err)
	}
	return err
}

func (r *PostgresListingRepository) Delete(ctx context.Context, p listing.Predicate) (int64, error) {
	if p.ID == nil {
		return 0, listing.ErrUnscopedMutation
	}

	where, args := whereClause(p, nil)
	return r.db.Exec(ctx, `DELETE FROM jobs j`+where, args...)
}

func (r *PostgresListingRepository) Locations(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT location FROM jobs ORDER BY location ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var loc string
		if err := rows.Scan(&loc); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// whereClause renders p as a single WHERE clause over alias j, numbering its
// placeholders after the ones already in args.
func whereClause(p listing.Predicate, args []any) (string, []any) {
	var conds []string
	bind := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.ID != nil {
		conds = append(conds, "j.id = "+bind(*p.ID))
	}
	if p.OwnerID != nil {
		conds = append(conds, "j.user_id = "+bind(*p.OwnerID))
	}
	if p.Query != "" {
		ph := bind(containsPattern(p.Query))
		conds = append(conds, "(j.title ILIKE "+ph+" OR j.company ILIKE "+ph+")")
	}
	if p.Location != "" {
		conds = append(conds, "j.location ILIKE "+bind(containsPattern(p.Location)))
	}
	if p.Category != "" {
		conds = append(conds, "j.job_type = "+bind(string(p.Category)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const orderNewestFirst = " ORDER BY j.created_at DESC, j.id DESC"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns user text into an ILIKE substring pattern; wildcard
// characters in the text match literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func scanListing(row database.Row) (listing.Listing, error) {
	var l listing.Listing
	var category string
	if err := row.Scan(
		&l.ID,
		&l.Title,
		&l.Company,
		&l.Description,
		&l.Location,
		&category,
		&l.OwnerID,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return listing.Listing{}, err
	}
	l.Category = listing.Category(category)
	return l, nil
}

func scanListings(rows database.Rows) ([]listing.Listing, error) {
	out := make([]listing.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
