package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"ploshtadka/internal/venue/models"
	"ploshtadka/pkg/platform/sentinel"
	txcontext "ploshtadka/pkg/platform/tx"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const venueColumns = `
	v.id, v.owner_id, v.name, v.description, v.sport_types,
	v.address, v.city, v.latitude, v.longitude,
	v.price_per_hour, v.currency, v.capacity,
	v.is_indoor, v.has_parking, v.has_changing_rooms, v.has_showers, v.has_equipment_rental,
	v.amenities, v.working_hours, v.status,
	v.rating, v.total_reviews, v.total_bookings,
	v.created_at, v.updated_at`

// Postgres persists venues, images and unavailabilities in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a store on an open pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) exec(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

// Ping checks connectivity for readiness probes.
func (s *Postgres) Ping(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Create inserts a new venue.
func (s *Postgres) Create(ctx context.Context, v *models.Venue) error {
	hours, err := encodeHours(v.WorkingHours)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO venues (
			id, owner_id, name, description, sport_types,
			address, city, latitude, longitude,
			price_per_hour, currency, capacity,
			is_indoor, has_parking, has_changing_rooms, has_showers, has_equipment_rental,
			amenities, working_hours, status,
			rating, total_reviews, total_bookings,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`
	_, err = s.exec(ctx).ExecContext(ctx, query,
		v.ID, v.OwnerID, v.Name, v.Description, pq.Array(sportStrings(v.SportTypes)),
		v.Address, v.City, nullDecimal(v.Latitude), nullDecimal(v.Longitude),
		v.PricePerHour, v.Currency, v.Capacity,
		v.IsIndoor, v.HasParking, v.HasChangingRooms, v.HasShowers, v.HasEquipmentRental,
		pq.Array(nonNil(v.Amenities)), hours, string(v.Status),
		v.Rating, v.TotalReviews, v.TotalBookings,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert venue: %w", err)
	}
	return nil
}

// FindByID returns the venue with its images and unavailabilities.
func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	v, err := s.findVenue(ctx, `SELECT`+venueColumns+` FROM venues v WHERE v.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadRelations(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// VenueOwner returns the owner of a venue.
func (s *Postgres) VenueOwner(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := s.exec(ctx).QueryRowContext(ctx, `SELECT owner_id FROM venues WHERE id = $1`, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, sentinel.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("find venue owner: %w", err)
	}
	return owner, nil
}

// List returns one page of venues matching f, newest first. The thumbnail is
// resolved in the same statement.
func (s *Postgres) List(ctx context.Context, f models.Filters) ([]*models.ListItem, error) {
	where, args := buildWhere(f)
	args = append(args, f.PageSize(), f.Offset())
	query := `
		SELECT v.id, v.owner_id, v.name, v.city, v.sport_types, v.status,
			v.price_per_hour, v.currency, v.capacity, v.is_indoor,
			v.rating, v.total_reviews,
			(SELECT i.url FROM venue_images i
				WHERE i.venue_id = v.id AND i.is_thumbnail
				ORDER BY i.sort_order, i.created_at LIMIT 1) AS thumbnail
		FROM venues v` + where + `
		ORDER BY v.created_at DESC, v.id
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := s.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	items := make([]*models.ListItem, 0, f.PageSize())
	for rows.Next() {
		var (
			item      models.ListItem
			sports    pq.StringArray
			status    string
			thumbnail sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Name, &item.City, &sports, &status,
			&item.PricePerHour, &item.Currency, &item.Capacity, &item.IsIndoor,
			&item.Rating, &item.TotalReviews, &thumbnail,
		); err != nil {
			return nil, fmt.Errorf("scan venue list item: %w", err)
		}
		item.SportTypes = toSportTypes(sports)
		item.Status = models.Status(status)
		if thumbnail.Valid {
			url := thumbnail.String
			item.Thumbnail = &url
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return items, nil
}

// buildWhere renders the conjunction of the active predicates of f.
func buildWhere(f models.Filters) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if st := f.Status(); st != nil {
		add("v.status = ?", string(*st))
	}
	if city, ok := f.City(); ok {
		add("v.city ILIKE ?", "%"+escapeLike(city)+"%")
	}
	if sport := f.SportType(); sport != nil {
		add("? = ANY(v.sport_types)", string(*sport))
	}
	if indoor := f.IsIndoor(); indoor != nil {
		add("v.is_indoor = ?", *indoor)
	}
	if parking := f.HasParking(); parking != nil {
		add("v.has_parking = ?", *parking)
	}
	if minPrice := f.MinPrice(); minPrice != nil {
		add("v.price_per_hour >= ?", *minPrice)
	}
	if maxPrice := f.MaxPrice(); maxPrice != nil {
		add("v.price_per_hour <= ?", *maxPrice)
	}
	if minCapacity := f.MinCapacity(); minCapacity != nil {
		add("v.capacity >= ?", *minCapacity)
	}
	if owner := f.OwnerID(); owner != nil {
		add("v.owner_id = ?", *owner)
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "\n\t\tWHERE " + strings.Join(clauses, " AND "), args
}

// UpdateForOwner locks the venue row, applies mutate and writes it back, all
// in one transaction. A venue owned by someone else is reported as not found.
func (s *Postgres) UpdateForOwner(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Venue) error) (*models.Venue, error) {
	var updated *models.Venue
	err := txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		v, err := s.findVenue(ctx,
			`SELECT`+venueColumns+` FROM venues v WHERE v.id = $1 AND v.owner_id = $2 FOR UPDATE`, id, ownerID)
		if err != nil {
			return err
		}
		if err := mutate(v); err != nil {
			return err
		}
		v.ID, v.OwnerID = id, ownerID
		if err := s.writeVenue(ctx, v); err != nil {
			return err
		}
		if err := s.loadRelations(ctx, v); err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Postgres) writeVenue(ctx context.Context, v *models.Venue) error {
	hours, err := encodeHours(v.WorkingHours)
	if err != nil {
		return err
	}
	query := `
		UPDATE venues SET
			name = $2, description = $3, sport_types = $4,
			address = $5, city = $6, latitude = $7, longitude = $8,
			price_per_hour = $9, currency = $10, capacity = $11,
			is_indoor = $12, has_parking = $13, has_changing_rooms = $14,
			has_showers = $15, has_equipment_rental = $16,
			amenities = $17, working_hours = $18, updated_at = $19
		WHERE id = $1
	`
	_, err = s.exec(ctx).ExecContext(ctx, query,
		v.ID, v.Name, v.Description, pq.Array(sportStrings(v.SportTypes)),
		v.Address, v.City, nullDecimal(v.Latitude), nullDecimal(v.Longitude),
		v.PricePerHour, v.Currency, v.Capacity,
		v.IsIndoor, v.HasParking, v.HasChangingRooms,
		v.HasShowers, v.HasEquipmentRental,
		pq.Array(nonNil(v.Amenities)), hours, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

// UpdateStatus sets the venue status without ownership scoping.
func (s *Postgres) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, at time.Time) (*models.Venue, error) {
	res, err := s.exec(ctx).ExecContext(ctx,
		`UPDATE venues SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), at)
	if err != nil {
		return nil, fmt.Errorf("update venue status: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

// Delete removes a venue; images and unavailabilities cascade.
func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return requireAffected(res)
}

// DeleteForOwner removes a venue only if ownerID owns it.
func (s *Postgres) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := s.exec(ctx).ExecContext(ctx, `DELETE FROM venues WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete venue for owner: %w", err)
	}
	return requireAffected(res)
}

// ListImages returns a venue's images by display order.
func (s *Postgres) ListImages(ctx context.Context, venueID uuid.UUID) ([]*models.Image, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `
		SELECT id, venue_id, url, is_thumbnail, sort_order, created_at
		FROM venue_images
		WHERE venue_id = $1
		ORDER BY sort_order, created_at
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]*models.Image, 0)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}
	return images, nil
}

// CreateImage inserts img. When it is the thumbnail, the parent venue row is
// locked and existing thumbnails demoted in the same transaction.
func (s *Postgres) CreateImage(ctx context.Context, img *models.Image) error {
	return txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.lockVenue(ctx, img.VenueID); err != nil {
			return err
		}
		if img.IsThumbnail {
			if err := s.demoteThumbnails(ctx, img.VenueID, img.ID); err != nil {
				return err
			}
		}
		_, err := s.exec(ctx).ExecContext(ctx, `
			INSERT INTO venue_images (id, venue_id, url, is_thumbnail, sort_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, img.ID, img.VenueID, img.URL, img.IsThumbnail, img.Order, img.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return sentinel.ErrConflict
			}
			return fmt.Errorf("insert image: %w", err)
		}
		return nil
	})
}

// UpdateImage applies mutate to an image of venueID under the venue lock.
func (s *Postgres) UpdateImage(ctx context.Context, venueID, imageID uuid.UUID, mutate func(*models.Image) error) (*models.Image, error) {
	var updated *models.Image
	err := txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.lockVenue(ctx, venueID); err != nil {
			return err
		}
		row := s.exec(ctx).QueryRowContext(ctx, `
			SELECT id, venue_id, url, is_thumbnail, sort_order, created_at
			FROM venue_images
			WHERE id = $1 AND venue_id = $2
		`, imageID, venueID)
		img, err := scanImage(row)
		if err != nil {
			return err
		}
		if err := mutate(img); err != nil {
			return err
		}
		img.ID, img.VenueID = imageID, venueID
		if img.IsThumbnail {
			if err := s.demoteThumbnails(ctx, venueID, imageID); err != nil {
				return err
			}
		}
		_, err = s.exec(ctx).ExecContext(ctx, `
			UPDATE venue_images SET url = $2, is_thumbnail = $3, sort_order = $4
			WHERE id = $1
		`, img.ID, img.URL, img.IsThumbnail, img.Order)
		if err != nil {
			return fmt.Errorf("update image: %w", err)
		}
		updated = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteImage removes an image of venueID.
func (s *Postgres) DeleteImage(ctx context.Context, venueID, imageID uuid.UUID) error {
	res, err := s.exec(ctx).ExecContext(ctx,
		`DELETE FROM venue_images WHERE id = $1 AND venue_id = $2`, imageID, venueID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return requireAffected(res)
}

// ReorderImages assigns positions from ids in one statement. Ids of other
// venues match no row and are skipped.
func (s *Postgres) ReorderImages(ctx context.Context, venueID uuid.UUID, ids []uuid.UUID) ([]*models.Image, error) {
	if len(ids) > 0 {
		raw := make([]string, len(ids))
		for i, id := range ids {
			raw[i] = id.String()
		}
		_, err := s.exec(ctx).ExecContext(ctx, `
			UPDATE venue_images AS i
			SET sort_order = o.position - 1
			FROM unnest($2::uuid[]) WITH ORDINALITY AS o(id, position)
			WHERE i.id = o.id AND i.venue_id = $1
		`, venueID, pq.Array(raw))
		if err != nil {
			return nil, fmt.Errorf("reorder images: %w", err)
		}
	}
	return s.ListImages(ctx, venueID)
}

func (s *Postgres) lockVenue(ctx context.Context, venueID uuid.UUID) error {
	var id uuid.UUID
	err := s.exec(ctx).QueryRowContext(ctx, `SELECT id FROM venues WHERE id = $1 FOR UPDATE`, venueID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("lock venue: %w", err)
	}
	return nil
}

func (s *Postgres) demoteThumbnails(ctx context.Context, venueID, keep uuid.UUID) error {
	_, err := s.exec(ctx).ExecContext(ctx, `
		UPDATE venue_images SET is_thumbnail = FALSE
		WHERE venue_id = $1 AND id <> $2 AND is_thumbnail
	`, venueID, keep)
	if err != nil {
		return fmt.Errorf("demote thumbnails: %w", err)
	}
	return nil
}

// ListUnavailabilities returns a venue's blocked windows by start time.
func (s *Postgres) ListUnavailabilities(ctx context.Context, venueID uuid.UUID) ([]*models.Unavailability, error) {
	rows, err := s.exec(ctx).QueryContext(ctx, `
		SELECT id, venue_id, start_at, end_at, reason, created_at
		FROM venue_unavailabilities
		WHERE venue_id = $1
		ORDER BY start_at
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("list unavailabilities: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Unavailability, 0)
	for rows.Next() {
		u, err := scanUnavailability(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unavailabilities: %w", err)
	}
	return out, nil
}

// CreateUnavailability inserts u for an existing venue.
func (s *Postgres) CreateUnavailability(ctx context.Context, u *models.Unavailability) error {
	_, err := s.exec(ctx).ExecContext(ctx, `
		INSERT INTO venue_unavailabilities (id, venue_id, start_at, end_at, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.VenueID, u.Start, u.End, u.Reason, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("insert unavailability: %w", err)
	}
	return nil
}

// UpdateUnavailability applies mutate to a window of venueID.
func (s *Postgres) UpdateUnavailability(ctx context.Context, venueID, id uuid.UUID, mutate func(*models.Unavailability) error) (*models.Unavailability, error) {
	var updated *models.Unavailability
	err := txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		row := s.exec(ctx).QueryRowContext(ctx, `
			SELECT id, venue_id, start_at, end_at, reason, created_at
			FROM venue_unavailabilities
			WHERE id = $1 AND venue_id = $2
			FOR UPDATE
		`, id, venueID)
		u, err := scanUnavailability(row)
		if err != nil {
			return err
		}
		if err := mutate(u); err != nil {
			return err
		}
		_, err = s.exec(ctx).ExecContext(ctx, `
			UPDATE venue_unavailabilities SET start_at = $2, end_at = $3, reason = $4
			WHERE id = $1
		`, id, u.Start, u.End, u.Reason)
		if err != nil {
			return fmt.Errorf("update unavailability: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteUnavailability removes a window of venueID.
func (s *Postgres) DeleteUnavailability(ctx context.Context, venueID, id uuid.UUID) error {
	res, err := s.exec(ctx).ExecContext(ctx,
		`DELETE FROM venue_unavailabilities WHERE id = $1 AND venue_id = $2`, id, venueID)
	if err != nil {
		return fmt.Errorf("delete unavailability: %w", err)
	}
	return requireAffected(res)
}

func (s *Postgres) findVenue(ctx context.Context, query string, args ...any) (*models.Venue, error) {
	var (
		v         models.Venue
		sports    pq.StringArray
		amenities pq.StringArray
		lat, lng  decimal.NullDecimal
		hours     []byte
		status    string
	)
	err := s.exec(ctx).QueryRowContext(ctx, query, args...).Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Description, &sports,
		&v.Address, &v.City, &lat, &lng,
		&v.PricePerHour, &v.Currency, &v.Capacity,
		&v.IsIndoor, &v.HasParking, &v.HasChangingRooms, &v.HasShowers, &v.HasEquipmentRental,
		&amenities, &hours, &status,
		&v.Rating, &v.TotalReviews, &v.TotalBookings,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}
	v.SportTypes = toSportTypes(sports)
	v.Amenities = []string(amenities)
	v.Status = models.Status(status)
	if lat.Valid {
		v.Latitude = &lat.Decimal
	}
	if lng.Valid {
		v.Longitude = &lng.Decimal
	}
	v.WorkingHours = models.WorkingHours{}
	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &v.WorkingHours); err != nil {
			return nil, fmt.Errorf("decode working hours: %w", err)
		}
	}
	return &v, nil
}

func (s *Postgres) loadRelations(ctx context.Context, v *models.Venue) error {
	images, err := s.ListImages(ctx, v.ID)
	if err != nil {
		return err
	}
	windows, err := s.ListUnavailabilities(ctx, v.ID)
	if err != nil {
		return err
	}
	v.Images, v.Unavailabilities = images, windows
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImage(row rowScanner) (*models.Image, error) {
	var img models.Image
	if err := row.Scan(&img.ID, &img.VenueID, &img.URL, &img.IsThumbnail, &img.Order, &img.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan image: %w", err)
	}
	return &img, nil
}

func scanUnavailability(row rowScanner) (*models.Unavailability, error) {
	var (
		u      models.Unavailability
		reason sql.NullString
	)
	if err := row.Scan(&u.ID, &u.VenueID, &u.Start, &u.End, &reason, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan unavailability: %w", err)
	}
	if reason.Valid {
		r := reason.String
		u.Reason = &r
	}
	return &u, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func encodeHours(h models.WorkingHours) ([]byte, error) {
	if h == nil {
		h = models.WorkingHours{}
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode working hours: %w", err)
	}
	return b, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func sportStrings(in []models.SportType) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

func toSportTypes(in []string) []models.SportType {
	out := make([]models.SportType, len(in))
	for i, s := range in {
		out[i] = models.SportType(s)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
