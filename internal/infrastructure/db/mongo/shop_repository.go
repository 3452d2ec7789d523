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

// ShopRepository persists shopping lists. Every mutation is a single
// document update that also increments version.
type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

type mongoShop struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	FoodsInShop []primitive.ObjectID `bson:"foods_in_shop"`
	FoodChecked []primitive.ObjectID `bson:"food_checked"`
	NbChecked   int                  `bson:"nb_checked"`
	Version     int64                `bson:"version"`
	CreatedAt   time.Time            `bson:"created_at"`
}

// toDomain derives nb_checked from the stored checked set, so a stale
// counter on disk never reaches callers.
func (ms *mongoShop) toDomain() *domain.Shop {
	shop := &domain.Shop{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		FoodsInShop: hexIDs(ms.FoodsInShop),
		Version:     ms.Version,
		CreatedAt:   ms.CreatedAt.UTC(),
	}
	shop.ReplaceChecked(hexIDs(ms.FoodChecked))
	return shop
}

var errMalformedFoodID = fmt.Errorf("%w: malformed food id", domain.ErrInvalidInput)

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	foods, ok := objectIDs(shop.FoodsInShop)
	if !ok {
		return nil, errMalformedFoodID
	}
	checked, ok := objectIDs(shop.FoodChecked)
	if !ok {
		return nil, errMalformedFoodID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoShop{
		ID:          primitive.NewObjectID(),
		Name:        shop.Name,
		FoodsInShop: foods,
		FoodChecked: checked,
		NbChecked:   len(checked),
		CreatedAt:   shop.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoShop
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *ShopRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Shop, error) {
	oids := validObjectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Shop{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *ShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	return r.find(ctx, bson.D{})
}

func (r *ShopRepository) Update(ctx context.Context, id string, changes ports.ShopChanges, expectedVersion *int64) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}

	set := bson.M{}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.FoodsInShop != nil {
		foods, ok := objectIDs(*changes.FoodsInShop)
		if !ok {
			return nil, errMalformedFoodID
		}
		set["foods_in_shop"] = foods
	}
	if changes.FoodChecked != nil {
		checked, ok := objectIDs(*changes.FoodChecked)
		if !ok {
			return nil, errMalformedFoodID
		}
		set["food_checked"] = checked
		set["nb_checked"] = len(checked)
	}

	filter := bson.M{"_id": oid}
	if expectedVersion != nil {
		filter = versionFilter(oid, *expectedVersion)
	}

	update := bson.M{"$inc": bson.M{"version": 1}}
	if len(set) > 0 {
		update["$set"] = set
	}

	shop, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrShopNotFound) && expectedVersion != nil {
		if exists, existsErr := r.exists(ctx, oid); existsErr == nil && exists {
			return nil, domain.ErrVersionConflict
		}
	}
	return shop, err
}

func (r *ShopRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

func (r *ShopRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := validObjectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, fmt.Errorf("delete shops: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ShopRepository) PushFoods(ctx context.Context, id string, foodIDs []string) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}
	foods, ok := objectIDs(foodIDs)
	if !ok {
		return nil, errMalformedFoodID
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"foods_in_shop": bson.M{"$each": foods}},
		"$inc":  bson.M{"version": 1},
	})
}

func (r *ShopRepository) SetChecked(ctx context.Context, id string, foodIDs []string) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}
	checked, ok := objectIDs(foodIDs)
	if !ok {
		return nil, errMalformedFoodID
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"food_checked": checked, "nb_checked": len(checked)},
		"$inc": bson.M{"version": 1},
	})
}

// PullFood is a no-op on the membership set when foodID is absent or not a
// valid id, but still fails for an unknown list.
func (r *ShopRepository) PullFood(ctx context.Context, id, foodID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrShopNotFound
	}

	fid, err := primitive.ObjectIDFromHex(foodID)
	if err != nil {
		exists, err := r.exists(ctx, oid)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrShopNotFound
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"foods_in_shop": fid},
		"$inc":  bson.M{"version": 1},
	})
	if err != nil {
		return fmt.Errorf("pull food: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// versionFilter matches the list at the expected version. Documents written
// before versioning carry no field and count as version 0.
func versionFilter(oid primitive.ObjectID, version int64) bson.M {
	if version == 0 {
		return bson.M{"_id": oid, "$or": bson.A{
			bson.M{"version": 0},
			bson.M{"version": bson.M{"$exists": false}},
		}}
	}
	return bson.M{"_id": oid, "version": version}
}

func (r *ShopRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ms mongoShop
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *ShopRepository) exists(ctx context.Context, oid primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count shop: %w", err)
	}
	return n > 0, nil
}

func (r *ShopRepository) find(ctx context.Context, filter interface{}) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, fmt.Errorf("find shops: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoShop
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode shops: %w", err)
	}

	shops := make([]*domain.Shop, 0, len(docs))
	for i := range docs {
		shops = append(shops, docs[i].toDomain())
	}
	return shops, nil
}
