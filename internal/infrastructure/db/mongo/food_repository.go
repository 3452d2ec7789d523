package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chouchef/chouchef-api/internal/core/domain"
	"github.com/chouchef/chouchef-api/internal/core/ports"
)

type FoodRepository struct {
	col *mongo.Collection
}

func NewFoodRepository(db *mongo.Database) *FoodRepository {
	return &FoodRepository{col: db.Collection(collectionFoods)}
}

type mongoFood struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mf *mongoFood) toDomain() *domain.Food {
	return &domain.Food{
		ID:        mf.ID.Hex(),
		Name:      mf.Name,
		Image:     mf.Image,
		CreatedAt: mf.CreatedAt.UTC(),
	}
}

func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) (*domain.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFood{
		ID:        primitive.NewObjectID(),
		Name:      food.Name,
		Image:     food.Image,
		CreatedAt: food.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id string) (*domain.Food, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

// FindByName matches the exact name. Ties between duplicates go to the
// lowest _id, which is the oldest insert.
func (r *FoodRepository) FindByName(ctx context.Context, name string) (*domain.Food, error) {
	return r.findOne(ctx, bson.M{"name": name}, options.FindOne().SetSort(byIDAsc))
}

func (r *FoodRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Food, error) {
	oids := validObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Food{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *FoodRepository) List(ctx context.Context) ([]*domain.Food, error) {
	return r.find(ctx, bson.D{})
}

func (r *FoodRepository) Update(ctx context.Context, id string, changes ports.FoodChanges) (*domain.Food, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFoodNotFound
	}

	set := bson.M{}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.Image != nil {
		set["image"] = *changes.Image
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mf mongoFood
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("update food: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FoodRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFoodNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFoodNotFound
	}
	return nil
}

func (r *FoodRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if opts == nil {
		opts = options.FindOne()
	}

	var mf mongoFood
	if err := r.col.FindOne(ctx, filter, opts).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, fmt.Errorf("find food: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FoodRepository) find(ctx context.Context, filter interface{}) ([]*domain.Food, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, fmt.Errorf("find foods: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoFood
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode foods: %w", err)
	}

	foods := make([]*domain.Food, 0, len(docs))
	for i := range docs {
		foods = append(foods, docs[i].toDomain())
	}
	return foods, nil
}
