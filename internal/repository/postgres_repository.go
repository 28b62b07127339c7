package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/motorlane/adengine/internal/database"
	"github.com/motorlane/adengine/internal/models"
	"github.com/motorlane/adengine/internal/service"
)

const adColumns = `id, title, description, brand, model, year, price, mileage, engine_capacity,
	location, phone, whatsapp, listing_type, status, published, is_draft, rejection_description,
	created_by, creator_name, creator_email, org_id, boosted, boost_expiry, featured, feature_expiry,
	created_at, updated_at`

// PostgresRepository implements service.AdRepository using PostgreSQL
type PostgresRepository struct {
	db *database.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *database.DB) service.AdRepository {
	return &PostgresRepository{
		db: db,
	}
}

// FindAdByID retrieves a single ad snapshot
func (r *PostgresRepository) FindAdByID(ctx context.Context, id string) (*models.Ad, error) {
	query := fmt.Sprintf(`SELECT %s FROM ads WHERE id = $1`, adColumns)

	ad, err := scanAd(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to query ad: %w", err)
	}

	return ad, nil
}

// UpdateAdStatus applies a lifecycle transition as a single atomic update,
// so a crash between computing the new state and writing it cannot leave
// the ad half-updated.
func (r *PostgresRepository) UpdateAdStatus(ctx context.Context, id string, update models.StatusUpdate) (*models.Ad, error) {
	query := fmt.Sprintf(`
		UPDATE ads
		SET status = $1, published = $2, is_draft = $3, rejection_description = $4, updated_at = now()
		WHERE id = $5
		RETURNING %s
	`, adColumns)

	ad, err := scanAd(r.db.QueryRowContext(ctx, query,
		update.Status, update.Published, update.IsDraft, update.RejectionDescription, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update ad status: %w", err)
	}

	return ad, nil
}

// UpdateAdPromotion writes both promotion tiers in one update
func (r *PostgresRepository) UpdateAdPromotion(ctx context.Context, id string, promotion models.PromotionState) (*models.Ad, error) {
	query := fmt.Sprintf(`
		UPDATE ads
		SET boosted = $1, boost_expiry = $2, featured = $3, feature_expiry = $4, updated_at = now()
		WHERE id = $5
		RETURNING %s
	`, adColumns)

	ad, err := scanAd(r.db.QueryRowContext(ctx, query,
		promotion.Boosted, promotion.BoostExpiry, promotion.Featured, promotion.FeatureExpiry, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: ad %s", models.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update ad promotion: %w", err)
	}

	return ad, nil
}

// QueryAds translates the declarative filter into SQL and runs the paged
// query. Currently-promoted ads float to the top of the page; promotion
// activity is evaluated against now() at query time, never against the raw
// flags alone.
func (r *PostgresRepository) QueryAds(ctx context.Context, filter models.AdFilter, page, limit int) ([]models.Ad, int, error) {
	where, args := buildWhere(filter)

	countQuery := "SELECT COUNT(*) FROM ads" + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ads: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM ads%s
		ORDER BY (featured AND feature_expiry > now()) DESC,
			(boosted AND boost_expiry > now()) DESC,
			updated_at DESC
		LIMIT $%d OFFSET $%d
	`, adColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query ads: %w", err)
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ad: %w", err)
		}
		ads = append(ads, *ad)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over ad rows: %w", err)
	}

	return ads, total, nil
}

// buildWhere turns an AdFilter into a WHERE clause and its arguments
func buildWhere(filter models.AdFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CreatedBy != "" {
		conditions = append(conditions, "created_by = "+arg(filter.CreatedBy))
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			statuses[i] = string(status)
		}
		conditions = append(conditions, "status = ANY("+arg(pq.Array(statuses))+")")
	}

	if filter.ListingType != "" {
		conditions = append(conditions, "listing_type = "+arg(string(filter.ListingType)))
	}

	if filter.SearchText != "" {
		pattern := "%" + filter.SearchText + "%"
		placeholder := arg(pattern)
		fields := []string{"title", "description", "brand", "model", "phone", "whatsapp", "creator_name", "creator_email"}
		searchConditions := make([]string, len(fields))
		for i, field := range fields {
			searchConditions[i] = field + " ILIKE " + placeholder
		}
		conditions = append(conditions, "("+strings.Join(searchConditions, " OR ")+")")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAd(row rowScanner) (*models.Ad, error) {
	var ad models.Ad
	err := row.Scan(
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.Brand,
		&ad.Model,
		&ad.Year,
		&ad.Price,
		&ad.Mileage,
		&ad.EngineCC,
		&ad.Location,
		&ad.Phone,
		&ad.Whatsapp,
		&ad.ListingType,
		&ad.Status,
		&ad.Published,
		&ad.IsDraft,
		&ad.RejectionDescription,
		&ad.CreatedBy,
		&ad.CreatorName,
		&ad.CreatorEmail,
		&ad.OrgID,
		&ad.Boosted,
		&ad.BoostExpiry,
		&ad.Featured,
		&ad.FeatureExpiry,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ad, nil
}
