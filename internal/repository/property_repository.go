// This file defines repository methods for the `properties` table:
// realtor submissions, owner edits, admin moderation and the public
// single-listing reads. Search over listings lives in
// property_search.go.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Max1335/property-insights-hub/internal/model"
)

// ErrPropertyNotFound is returned when a listing cannot be found.
var ErrPropertyNotFound = errors.New("property not found")

// PropertyRepo encapsulates all database queries related to listings.
type PropertyRepo struct {
	db *sql.DB
}

func NewPropertyRepo(db *sql.DB) *PropertyRepo {
	return &PropertyRepo{db: db}
}

const propertyColumns = `id, seller_id, title, description, price, price_per_sqm, area, rooms,
	city, district, address, property_type, transaction_type, status,
	floor, total_floors, building_year, ` + "`condition`" + `, features, images,
	views_count, created_at, updated_at`

// prefixedPropertyColumns qualifies every property column with a table
// alias for use in joins.
func prefixedPropertyColumns(alias string) string {
	cols := strings.Split(propertyColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProperty reads one row in propertyColumns order. Features and
// images are stored as JSON text; malformed stored JSON degrades to an
// empty list instead of failing the whole read.
func scanProperty(s rowScanner) (model.Property, error) {
	var (
		p              model.Property
		rooms          sql.NullInt64
		floor          sql.NullInt64
		totalFloors    sql.NullInt64
		buildingYear   sql.NullInt64
		features, imgs []byte
	)
	err := s.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.PricePerSqm, &p.Area, &rooms,
		&p.City, &p.District, &p.Address, &p.PropertyType, &p.TransactionType, &p.Status,
		&floor, &totalFloors, &buildingYear, &p.Condition, &features, &imgs,
		&p.ViewsCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Rooms = nullableInt(rooms)
	p.Floor = nullableInt(floor)
	p.TotalFloors = nullableInt(totalFloors)
	p.BuildingYear = nullableInt(buildingYear)
	p.Features = decodeStrings(features)
	p.Images = decodeStrings(imgs)
	return p, nil
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func decodeStrings(raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}

func encodeStrings(list []string) []byte {
	if list == nil {
		list = []string{}
	}
	raw, _ := json.Marshal(list)
	return raw
}

// Create inserts a new listing. The ID is generated here (UUID), the
// status is forced to pending regardless of what the caller set, and
// price_per_sqm is derived from price/area. On success the struct is
// re-read so timestamps and defaults are populated.
func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	p.ID = uuid.NewString()
	p.Status = model.StatusPending
	if p.Area > 0 {
		p.PricePerSqm = p.Price / p.Area
	}
	const qInsert = `INSERT INTO properties
		(id, seller_id, title, description, price, price_per_sqm, area, rooms,
		 city, district, address, property_type, transaction_type, status,
		 floor, total_floors, building_year, ` + "`condition`" + `, features, images)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, qInsert,
		p.ID, p.SellerID, p.Title, p.Description, p.Price, p.PricePerSqm, p.Area, intOrNil(p.Rooms),
		p.City, p.District, p.Address, p.PropertyType, p.TransactionType, p.Status,
		intOrNil(p.Floor), intOrNil(p.TotalFloors), intOrNil(p.BuildingYear), p.Condition,
		encodeStrings(p.Features), encodeStrings(p.Images),
	)
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = fresh
	return nil
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// GetByID fetches a listing regardless of status. Moderation and owner
// flows need pending/rejected rows too; public handlers check the
// status themselves.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (model.Property, error) {
	q := "SELECT " + propertyColumns + " FROM properties WHERE id = ?"
	p, err := scanProperty(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrPropertyNotFound
	}
	return p, err
}

// PropertyUpdate carries the owner-editable fields. Nil pointers leave
// the column unchanged.
type PropertyUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Condition   *string
	Features    []string
	Images      []string
}

// UpdateByOwner applies an owner edit and returns the pre-edit price so
// callers can record a price-change event when it differs. It returns
// ErrPropertyNotFound when the listing does not exist and ErrForbidden
// when it belongs to someone else.
func (r *PropertyRepo) UpdateByOwner(ctx context.Context, id string, sellerID uint64, upd PropertyUpdate) (oldPrice float64, err error) {
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if cur.SellerID != sellerID {
		return 0, ErrForbidden
	}
	oldPrice = cur.Price

	set := []string{"updated_at = NOW()"}
	args := []any{}
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Price != nil {
		set = append(set, "price = ?", "price_per_sqm = ? / area")
		args = append(args, *upd.Price, *upd.Price)
	}
	if upd.Condition != nil {
		set = append(set, "`condition` = ?")
		args = append(args, *upd.Condition)
	}
	if upd.Features != nil {
		set = append(set, "features = ?")
		args = append(args, encodeStrings(upd.Features))
	}
	if upd.Images != nil {
		set = append(set, "images = ?")
		args = append(args, encodeStrings(upd.Images))
	}
	q := "UPDATE properties SET " + strings.Join(set, ", ") + " WHERE id = ? AND seller_id = ?"
	args = append(args, id, sellerID)
	_, err = r.db.ExecContext(ctx, q, args...)
	return oldPrice, err
}

// SetStatus transitions a pending listing to active or rejected. It
// returns ErrConflict when the listing already left the pending state
// and ErrPropertyNotFound when it does not exist.
func (r *PropertyRepo) SetStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE properties SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?",
		status, id, model.StatusPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// ListPending returns listings awaiting moderation, oldest submission
// first so the queue is worked in order.
func (r *PropertyRepo) ListPending(ctx context.Context) ([]model.Property, error) {
	q := "SELECT " + propertyColumns + " FROM properties WHERE status = ? ORDER BY created_at ASC, id ASC"
	return r.queryProperties(ctx, q, model.StatusPending)
}

// ListBySeller returns all listings of one seller, newest first,
// including pending and rejected ones.
func (r *PropertyRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]model.Property, error) {
	q := "SELECT " + propertyColumns + " FROM properties WHERE seller_id = ? ORDER BY created_at DESC, id DESC"
	return r.queryProperties(ctx, q, sellerID)
}

// Featured returns the newest active listings for the home page.
func (r *PropertyRepo) Featured(ctx context.Context, limit int) ([]model.Property, error) {
	if limit < 1 {
		limit = 3
	}
	q := "SELECT " + propertyColumns + " FROM properties WHERE status = ? ORDER BY created_at DESC, id DESC LIMIT ?"
	return r.queryProperties(ctx, q, model.StatusActive, limit)
}

// GetMany fetches listings for the given ids, preserving the order of
// the input slice. The comparison view relies on the insertion order
// of the comparison set. Missing ids are skipped silently.
func (r *PropertyRepo) GetMany(ctx context.Context, ids []string) ([]model.Property, error) {
	if len(ids) == 0 {
		return []model.Property{}, nil
	}
	placeholders := "?"
	args := []any{ids[0]}
	for _, id := range ids[1:] {
		placeholders += ",?"
		args = append(args, id)
	}
	q := "SELECT " + propertyColumns + " FROM properties WHERE id IN (" + placeholders + ")"
	fetched, err := r.queryProperties(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Property, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}
	out := make([]model.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// IncrementViews bumps the denormalized view counter.
func (r *PropertyRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE properties SET views_count = views_count + 1 WHERE id = ?", id)
	return err
}

func (r *PropertyRepo) queryProperties(ctx context.Context, q string, args ...any) ([]model.Property, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
