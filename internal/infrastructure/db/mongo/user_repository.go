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

type UserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), now: time.Now}
}

type mongoUser struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Email     string               `bson:"email"`
	Name      string               `bson:"name"`
	Password  string               `bson:"password"`
	ShopIDs   []primitive.ObjectID `bson:"user_shop"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Email:        mu.Email,
		Name:         mu.Name,
		PasswordHash: mu.Password,
		ShopIDs:      hexIDs(mu.ShopIDs),
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	shops, ok := objectIDs(user.ShopIDs)
	if !ok {
		return nil, fmt.Errorf("%w: malformed shop id", domain.ErrInvalidInput)
	}

	doc := mongoUser{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Name:      user.Name,
		Password:  user.PasswordHash,
		ShopIDs:   shops,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, changes ports.UserChanges) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": r.now().UTC()}
	if changes.Email != nil {
		set["email"] = *changes.Email
	}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.PasswordHash != nil {
		set["password"] = *changes.PasswordHash
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mu)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, domain.ErrUserExists
	case err != nil:
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// Delete removes the user in one round trip and hands back its last state so
// the caller can clean up the lists it owned.
func (r *UserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("delete user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) AttachShop(ctx context.Context, userID, shopID string) error {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	sid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return domain.ErrShopNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$addToSet": bson.M{"user_shop": sid},
		"$set":      bson.M{"updated_at": r.now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("attach shop: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DetachShop(ctx context.Context, shopID string) error {
	sid, err := primitive.ObjectIDFromHex(shopID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.UpdateMany(ctx, bson.M{"user_shop": sid}, bson.M{"$pull": bson.M{"user_shop": sid}}); err != nil {
		return fmt.Errorf("detach shop: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}
