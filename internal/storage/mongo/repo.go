package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopcart_sentiment/internal/domain"
)

const (
	reviewsCollection  = "reviews"
	productsCollection = "products"
)

type productDoc struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Price float64            `bson:"price"`
	Image string             `bson:"image"`
	Score int                `bson:"score"`
}

type reviewDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	ProductID  primitive.ObjectID `bson:"productId"`
	ReviewText string             `bson:"reviewText"`
}

type Repo struct {
	client   *mongo.Client
	db       *mongo.Database
	reviews  *mongo.Collection
	products *mongo.Collection
}

// Connect dials uri and verifies the deployment answers before returning.
func Connect(ctx context.Context, uri, database string) (*Repo, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, unavailable("connect", err)
	}
	r := New(client, database)
	if err := r.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

func New(client *mongo.Client, database string) *Repo {
	db := client.Database(database)
	return &Repo{
		client:   client,
		db:       db,
		reviews:  db.Collection(reviewsCollection),
		products: db.Collection(productsCollection),
	}
}

func (r *Repo) ListReviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	cur, err := r.reviews.Find(ctx,
		bson.M{"productId": primitive.ObjectID(id)},
		options.Find().SetProjection(bson.M{"productId": 1, "reviewText": 1}),
	)
	if err != nil {
		return nil, unavailable("find reviews", err)
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode reviews", err)
	}
	out := make([]domain.Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Review{
			ID:        d.ID.Hex(),
			ProductID: domain.ProductID(d.ProductID),
			Text:      d.ReviewText,
		})
	}
	return out, nil
}

func (r *Repo) ListProductIDs(ctx context.Context) ([]domain.ProductID, error) {
	cur, err := r.products.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, unavailable("list product ids", err)
	}
	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode product ids", err)
	}
	out := make([]domain.ProductID, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ProductID(d.ID))
	}
	return out, nil
}

func (r *Repo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	cur, err := r.products.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"name": 1, "price": 1, "image": 1, "score": 1}),
	)
	if err != nil {
		return nil, unavailable("list products", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode products", err)
	}
	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Product{
			ID:    domain.ProductID(d.ID),
			Name:  d.Name,
			Price: d.Price,
			Image: d.Image,
			Score: d.Score,
		})
	}
	return out, nil
}

// SetScore writes the score even if it is unchanged. A missing product is not an error.
func (r *Repo) SetScore(ctx context.Context, id domain.ProductID, score int) error {
	_, err := r.products.UpdateOne(ctx,
		bson.M{"_id": primitive.ObjectID(id)},
		bson.M{"$set": bson.M{"score": score}},
	)
	if err != nil {
		return unavailable("set score", err)
	}
	return nil
}

// Database exposes the underlying database for seeding and maintenance.
func (r *Repo) Database() *mongo.Database { return r.db }

func (r *Repo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx, nil); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (r *Repo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("mongo %s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
