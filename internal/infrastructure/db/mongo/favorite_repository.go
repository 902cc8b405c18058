package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/movieverse/api/internal/core/domain"
)

const favoritesCollection = "favorites"

// FavoriteRepository implements ports.FavoriteRepository using MongoDB.
type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *FavoriteRepository {
	return &FavoriteRepository{col: db.Collection(favoritesCollection)}
}

type mongoFavorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	MovieID   string             `bson:"movie_id"`
	Title     string             `bson:"title"`
	PosterURL string             `bson:"poster_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (f mongoFavorite) toDomain() domain.Favorite {
	return domain.Favorite{
		ID:        f.ID.Hex(),
		UserID:    f.UserID,
		MovieID:   f.MovieID,
		Title:     f.Title,
		PosterURL: f.PosterURL,
		CreatedAt: f.CreatedAt.UTC(),
	}
}

// List returns the user's favorites in insertion order.
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	var docs []mongoFavorite
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}

	favs := make([]domain.Favorite, 0, len(docs))
	for _, d := range docs {
		favs = append(favs, d.toDomain())
	}
	return favs, nil
}

// Create inserts the favorite. The compound unique index on
// (user_id, movie_id) rejects duplicates.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.Favorite) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFavorite{
		ID:        primitive.NewObjectID(),
		UserID:    fav.UserID,
		MovieID:   fav.MovieID,
		Title:     fav.Title,
		PosterURL: fav.PosterURL,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}

	created := doc.toDomain()
	return &created, nil
}

// Delete removes the favorite only when it belongs to userID.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, favoriteID string) error {
	oid, err := primitive.ObjectIDFromHex(favoriteID)
	if err != nil {
		return domain.ErrFavoriteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// EnsureIndexes creates the per-user uniqueness index.
func (r *FavoriteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "movie_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_movie_unique"),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
