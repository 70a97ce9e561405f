// Package listing provides the listing domain model and data access.
package listing

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PlaceholderImage is shown for listings stored without an image.
const PlaceholderImage = "https://via.placeholder.com/300x200?text=Immobilier"

// DateLayout is the calendar date format used in storage and JSON.
const DateLayout = "2006-01-02"

// TransactionType says whether a listing is for sale or for rent.
type TransactionType string

const (
	Sale   TransactionType = "sale"
	Rental TransactionType = "rental"
)

// ValidTransactionType returns true if s is a known transaction type.
func ValidTransactionType(s string) bool {
	switch TransactionType(s) {
	case Sale, Rental:
		return true
	}
	return false
}

// Date is a calendar date without a time of day, formatted YYYY-MM-DD.
type Date string

// DateOf returns the local calendar date of t.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the server's local calendar date.
func Today() Date {
	return DateOf(time.Now())
}

// Time parses the date at midnight in the local zone.
func (d Date) Time() (time.Time, error) {
	return time.ParseInLocation(DateLayout, string(d), time.Local)
}

// Scan implements sql.Scanner. SQLite hands back text, PostgreSQL a time.Time.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.Format(DateLayout))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported publication_date column type %T", src)
	}
}

func (d *Date) parse(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	*d = Date(s)
	return nil
}

// Value implements driver.Valuer. The empty date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

// UnmarshalJSON accepts a YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decoding date: %w", err)
	}
	if s == nil || *s == "" {
		*d = ""
		return nil
	}
	return d.parse(*s)
}

// Listing is one real-estate advertisement.
type Listing struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	Price              string          `json:"price"`
	TransactionType    TransactionType `json:"transaction_type"`
	Neighborhood       string          `json:"neighborhood"`
	SurfaceArea        string          `json:"surface_area"`
	BedroomCount       int             `json:"bedroom_count"`
	Category           string          `json:"category,omitempty"`
	PublicationDate    Date            `json:"publication_date"`
	RetrievalTimestamp time.Time       `json:"retrieval_timestamp"`
	Source             string          `json:"source"`
	URL                string          `json:"url"`
	ContactName        string          `json:"contact_name,omitempty"`
	ContactPhone       string          `json:"contact_phone,omitempty"`
	ContactEmail       string          `json:"contact_email,omitempty"`
	ContactWhatsApp    string          `json:"contact_whatsapp,omitempty"`
	Image              string          `json:"image,omitempty"`
}

// WithPlaceholder returns a copy of l that has an image, using
// PlaceholderImage when none was stored.
func (l Listing) WithPlaceholder() Listing {
	if l.Image == "" {
		l.Image = PlaceholderImage
	}
	return l
}

// Stats holds the aggregate counts over all stored listings.
type Stats struct {
	Total                 int `json:"total"`
	Today                 int `json:"today"`
	SaleCount             int `json:"sale_count"`
	RentalCount           int `json:"rental_count"`
	DistinctNeighborhoods int `json:"distinct_neighborhoods"`
}

// scanListing scans a listing from a database row.
func scanListing(row interface{ Scan(...interface{}) error }) (Listing, error) {
	var l Listing
	var description, url, category, image sql.NullString
	var name, phone, email, whatsapp sql.NullString
	var transactionType string

	err := row.Scan(
		&l.ID, &l.Title, &description, &l.Price, &transactionType,
		&l.Neighborhood, &l.SurfaceArea, &l.BedroomCount, &l.PublicationDate,
		&l.RetrievalTimestamp, &l.Source, &url,
		&name, &phone, &email, &whatsapp, &category, &image,
	)
	if err != nil {
		return Listing{}, err
	}

	l.TransactionType = TransactionType(transactionType)
	l.Description = description.String
	l.URL = url.String
	l.ContactName = name.String
	l.ContactPhone = phone.String
	l.ContactEmail = email.String
	l.ContactWhatsApp = whatsapp.String
	l.Category = category.String
	l.Image = image.String

	return l, nil
}

// nullable maps the empty string to NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
