package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/feature/auth/usecase"
	propertyusecase "estate_backend/internal/feature/property/usecase"
	relationentity "estate_backend/internal/feature/relation/domain/entity"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/shared/apperr"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

type residencyDocument struct {
	ID    bson.ObjectID `bson:"_id"`
	Title string        `bson:"title"`
}

// userDocument embeds the residencies and both relation sets in the user.
type userDocument struct {
	ID               bson.ObjectID       `bson:"_id,omitempty"`
	Name             string              `bson:"name"`
	Email            string              `bson:"email"`
	Password         string              `bson:"password"`
	OwnedResidencies []residencyDocument `bson:"ownedResidencies"`
	Favorites        []bson.ObjectID     `bson:"favorites"`
	Wishlist         []bson.ObjectID     `bson:"wishlist"`
	CreatedAt        time.Time           `bson:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	u := &entity.User{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Email:            d.Email,
		Password:         d.Password,
		OwnedResidencies: make([]entity.Residency, 0, len(d.OwnedResidencies)),
		Favorites:        hexIDs(d.Favorites),
		Wishlist:         hexIDs(d.Wishlist),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	for _, r := range d.OwnedResidencies {
		u.OwnedResidencies = append(u.OwnedResidencies, entity.Residency{PropertyID: r.ID.Hex(), Title: r.Title})
	}
	return u
}

func hexIDs(ids []bson.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}

// userMongo is the MongoDB implementation of the user store.
type userMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.UserRepository = (*userMongo)(nil)
var _ relationusecase.UserRepository = (*userMongo)(nil)
var _ propertyusecase.OwnerRepository = (*userMongo)(nil)

// NewUserMongo creates a user store on the users collection of db.
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UsersCollection), now: time.Now}
}

// EnsureIndexes creates the unique email index.
func (r *userMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// Create inserts a new user document with empty relation arrays.
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:               bson.NewObjectID(),
		Name:             u.Name,
		Email:            u.Email,
		Password:         u.Password,
		OwnedResidencies: []residencyDocument{},
		Favorites:        []bson.ObjectID{},
		Wishlist:         []bson.ObjectID{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	u.ID = doc.ID.Hex()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByID treats a malformed id as an unknown user.
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrUserNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (r *userMongo) List(ctx context.Context) ([]entity.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	out := make([]entity.User, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

// AddToRelation only matches the user while propertyID is not yet a member,
// so a concurrent duplicate add leaves MatchedCount at zero.
func (r *userMongo) AddToRelation(ctx context.Context, userID string, kind relationentity.Kind, propertyID string) (bool, error) {
	uid, pid, err := relationIDs(userID, propertyID)
	if err != nil {
		return false, err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.D{
			{Key: "_id", Value: uid},
			{Key: kind.String(), Value: bson.D{{Key: "$ne", Value: pid}}},
		},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: kind.String(), Value: pid}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now().UTC()}}},
		},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: uid}})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, usecase.ErrUserNotFound
	}
	return false, nil
}

// RemoveFromRelation uses $pull, which is a no-op for non-members.
// A property id that is not an ObjectID can never be a member.
func (r *userMongo) RemoveFromRelation(ctx context.Context, userID string, kind relationentity.Kind, propertyID string) error {
	uid, pid, err := relationIDs(userID, propertyID)
	if errors.Is(err, apperr.ErrValidation) {
		return nil
	}
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: uid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: kind.String(), Value: pid}}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// AppendResidency pushes the {_id, title} snapshot onto ownedResidencies.
func (r *userMongo) AppendResidency(ctx context.Context, userID string, res entity.Residency) error {
	uid, pid, err := relationIDs(userID, res.PropertyID)
	if err != nil {
		return err
	}
	out, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: uid}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "ownedResidencies", Value: residencyDocument{ID: pid, Title: res.Title}}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: r.now().UTC()}}},
		},
	)
	if err != nil {
		return err
	}
	if out.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

func (r *userMongo) findOne(ctx context.Context, filter bson.D) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func relationIDs(userID, propertyID string) (bson.ObjectID, bson.ObjectID, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, usecase.ErrUserNotFound
	}
	pid, err := bson.ObjectIDFromHex(propertyID)
	if err != nil {
		return bson.ObjectID{}, bson.ObjectID{}, apperr.Invalid("propertyId", "is not a valid id")
	}
	return uid, pid, nil
}
