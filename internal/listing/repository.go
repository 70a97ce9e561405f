package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evcraddock/immo-abidjan/internal/db"
)

// ErrNotFound is returned when no listing has the requested id.
var ErrNotFound = errors.New("listing not found")

// Repository persists listings. Listings are inserted once and never updated.
type Repository struct {
	db      *sql.DB
	dialect db.Dialect
	now     func() time.Time
}

// NewRepository creates a listing repository for the given dialect.
func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{db: conn, dialect: dialect, now: time.Now}
}

// Init creates the schema. It is idempotent.
func (r *Repository) Init(ctx context.Context) error {
	if err := db.Migrate(ctx, r.db, r.dialect); err != nil {
		return fmt.Errorf("initializing listing store: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const insertSQL = `INSERT INTO listings
	(id, title, description, price, transaction_type, neighborhood, surface_area, bedroom_count,
	 publication_date, retrieval_timestamp, source, url,
	 contact_name, contact_phone, contact_email, contact_whatsapp, category, image)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT DO NOTHING`

const selectColumns = `id, title, description, price, transaction_type, neighborhood, surface_area, bedroom_count,
	publication_date, retrieval_timestamp, source, url,
	contact_name, contact_phone, contact_email, contact_whatsapp, category, image`

// Upsert inserts l unless a row with the same id or url already exists.
// It reports whether a new row was written; a duplicate is not an error.
func (r *Repository) Upsert(ctx context.Context, l Listing) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertSQL),
		l.ID, l.Title, nullable(l.Description), l.Price, string(l.TransactionType),
		l.Neighborhood, l.SurfaceArea, l.BedroomCount,
		l.PublicationDate, r.now().UTC(), l.Source, nullable(l.URL),
		nullable(l.ContactName), nullable(l.ContactPhone),
		nullable(l.ContactEmail), nullable(l.ContactWhatsApp),
		nullable(l.Category), nullable(l.Image),
	)
	if err != nil {
		return false, fmt.Errorf("inserting listing %d: %w", l.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return rows == 1, nil
}

// GetByID returns a listing by its id, or an error wrapping ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (Listing, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns)
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(query), id)

	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Listing{}, fmt.Errorf("listing %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Listing{}, fmt.Errorf("querying listing %d: %w", id, err)
	}

	return l, nil
}

// Filter narrows list queries. Both fields match as case-insensitive
// substrings; empty fields match everything.
type Filter struct {
	Neighborhood    string
	TransactionType string
}

// ListAll returns every listing, most recently retrieved first.
func (r *Repository) ListAll(ctx context.Context, f Filter) ([]Listing, error) {
	return r.list(ctx, f, "")
}

// ListToday returns listings published on the current local date,
// most recently retrieved first.
func (r *Repository) ListToday(ctx context.Context, f Filter) ([]Listing, error) {
	return r.list(ctx, f, r.today())
}

func (r *Repository) list(ctx context.Context, f Filter, date Date) (listings []Listing, err error) {
	query := fmt.Sprintf("SELECT %s FROM listings", selectColumns)
	var args []interface{}
	var conditions []string

	if date != "" {
		conditions = append(conditions, "publication_date = ?")
		args = append(args, date)
	}

	if f.Neighborhood != "" {
		conditions = append(conditions, "LOWER(neighborhood) LIKE ?")
		args = append(args, likePattern(f.Neighborhood))
	}

	if f.TransactionType != "" {
		conditions = append(conditions, "LOWER(transaction_type) LIKE ?")
		args = append(args, likePattern(f.TransactionType))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY retrieval_timestamp DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// Stats computes the five aggregate counts, each with its own query.
func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	counts := []struct {
		dest  *int
		query string
		args  []interface{}
	}{
		{&s.Total, "SELECT COUNT(*) FROM listings", nil},
		{&s.Today, "SELECT COUNT(*) FROM listings WHERE publication_date = ?", []interface{}{r.today()}},
		{&s.SaleCount, "SELECT COUNT(*) FROM listings WHERE transaction_type = ?", []interface{}{string(Sale)}},
		{&s.RentalCount, "SELECT COUNT(*) FROM listings WHERE transaction_type = ?", []interface{}{string(Rental)}},
		{&s.DistinctNeighborhoods, "SELECT COUNT(DISTINCT neighborhood) FROM listings", nil},
	}

	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(c.query), c.args...).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("counting listings: %w", err)
		}
	}

	return s, nil
}

// CountToday returns how many listings are dated today, ignoring filters.
func (r *Repository) CountToday(ctx context.Context) (int, error) {
	var n int
	query := r.dialect.Rebind("SELECT COUNT(*) FROM listings WHERE publication_date = ?")
	if err := r.db.QueryRowContext(ctx, query, r.today()).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting today's listings: %w", err)
	}
	return n, nil
}

func (r *Repository) today() Date {
	return DateOf(r.now())
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
