package mysql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"shopcart_sentiment/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open opens and pings a MySQL pool for dsn.
func Open(ctx context.Context, dsn string) (*Repo, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, unavailable("open", err)
	}
	r := New(db)
	if err := r.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) ListReviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsSQL, id.String())
	if err != nil {
		return nil, unavailable("list reviews", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var (
			rv        domain.Review
			productID string
			text      sql.NullString
		)
		if err := rows.Scan(&rv.ID, &productID, &text); err != nil {
			return nil, unavailable("scan review", err)
		}
		if rv.ProductID, err = domain.ParseProductID(productID); err != nil {
			return nil, err
		}
		if text.Valid {
			rv.Text = text.String
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list reviews", err)
	}
	return out, nil
}

func (r *Repo) ListProductIDs(ctx context.Context) ([]domain.ProductID, error) {
	rows, err := r.db.QueryContext(ctx, listProductIDsSQL)
	if err != nil {
		return nil, unavailable("list product ids", err)
	}
	defer rows.Close()

	var out []domain.ProductID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, unavailable("scan product id", err)
		}
		id, err := domain.ParseProductID(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list product ids", err)
	}
	return out, nil
}

func (r *Repo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsSQL)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var (
			p     domain.Product
			raw   string
			image sql.NullString
			score sql.NullInt64
		)
		if err := rows.Scan(&raw, &p.Name, &p.Price, &image, &score); err != nil {
			return nil, unavailable("scan product", err)
		}
		if p.ID, err = domain.ParseProductID(raw); err != nil {
			return nil, err
		}
		if image.Valid {
			p.Image = image.String
		}
		if score.Valid {
			p.Score = int(score.Int64)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list products", err)
	}
	return out, nil
}

func (r *Repo) SetScore(ctx context.Context, id domain.ProductID, score int) error {
	if _, err := r.db.ExecContext(ctx, setScoreSQL, score, id.String()); err != nil {
		return unavailable("set score", err)
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (r *Repo) Close(context.Context) error { return r.db.Close() }

func unavailable(op string, err error) error {
	return fmt.Errorf("mysql %s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
