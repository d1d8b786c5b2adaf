package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platify/platify-core/internal/domain"
	"github.com/platify/platify-core/internal/logger"
)

// favoriteDocument is the stored shape of a favorite
type favoriteDocument struct {
	UserID      string     `bson:"userId"`
	RecipeID    string     `bson:"recipeId"`
	Title       string     `bson:"title"`
	Description string     `bson:"description,omitempty"`
	SkillLevel  string     `bson:"skillLevel,omitempty"`
	Steps       []string   `bson:"steps"`
	CookingTime int        `bson:"cookingTime,omitempty"`
	Portions    int        `bson:"portions,omitempty"`
	Ingredients []string   `bson:"ingredients,omitempty"`
	GeneratedAt time.Time  `bson:"generatedAt,omitempty"`
	Completed   bool       `bson:"completed"`
	CompletedAt *time.Time `bson:"completedAt,omitempty"`
	WeekID      string     `bson:"weekId,omitempty"`
	SavedAt     time.Time  `bson:"savedAt"`
}

func toDocument(fav Favorite) favoriteDocument {
	r := fav.Recipe
	return favoriteDocument{
		UserID:      fav.UserID,
		RecipeID:    r.ID,
		Title:       r.Title,
		Description: r.Description,
		SkillLevel:  string(r.SkillLevel),
		Steps:       r.Steps,
		CookingTime: r.CookingTimeMinutes,
		Portions:    r.Portions,
		Ingredients: r.Ingredients,
		GeneratedAt: r.GeneratedAt,
		Completed:   r.Completed,
		CompletedAt: r.CompletedAt,
		WeekID:      r.WeekID,
		SavedAt:     fav.SavedAt,
	}
}

func (d favoriteDocument) toFavorite() Favorite {
	steps := d.Steps
	if steps == nil {
		steps = []string{}
	}
	return Favorite{
		UserID: d.UserID,
		Recipe: domain.RecipeRecord{
			ID:                 d.RecipeID,
			Title:              d.Title,
			Description:        d.Description,
			SkillLevel:         domain.SkillLevel(d.SkillLevel),
			Steps:              steps,
			CookingTimeMinutes: d.CookingTime,
			Portions:           d.Portions,
			Ingredients:        d.Ingredients,
			GeneratedAt:        d.GeneratedAt.UTC(),
			Completed:          d.Completed,
			CompletedAt:        d.CompletedAt,
			WeekID:             d.WeekID,
		},
		SavedAt: d.SavedAt.UTC(),
	}
}

// MongoStore keeps favorites in a MongoDB collection, one document per user and recipe
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to uri and ensures the (userId, recipeId) unique index
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectFailed, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectFailed, err)
	}

	store, err := NewMongoStoreFromClient(ctx, client, database)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgStoreOpened, "backend", "mongodb", "database", database)
	return store, nil
}

// NewMongoStoreFromClient wraps a connected client. The store owns the client afterwards.
func NewMongoStoreFromClient(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	coll := client.Database(database).Collection(CollectionName)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldUserID, Value: 1}, {Key: fieldRecipeID, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgIndexFailed, err)
	}
	return &MongoStore{client: client, collection: coll}, nil
}

// Upsert implements Store
func (s *MongoStore) Upsert(ctx context.Context, fav Favorite) error {
	filter := bson.M{fieldUserID: fav.UserID, fieldRecipeID: fav.ID()}
	_, err := s.collection.ReplaceOne(ctx, filter, toDocument(fav), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpsertFailed, err)
	}
	return nil
}

// List implements Store
func (s *MongoStore) List(ctx context.Context, userID string) ([]Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: fieldSavedAt, Value: -1}, {Key: fieldRecipeID, Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{fieldUserID: userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}
	defer cursor.Close(ctx)

	var docs []favoriteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgListFailed, err)
	}

	out := make([]Favorite, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toFavorite())
	}
	return out, nil
}

// Delete implements Store
func (s *MongoStore) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	res, err := s.collection.DeleteOne(ctx, bson.M{fieldUserID: userID, fieldRecipeID: recipeID})
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgDeleteFailed, err)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects the client
func (s *MongoStore) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return err
	}
	return nil
}
