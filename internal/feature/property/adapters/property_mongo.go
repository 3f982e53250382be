package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/usecase"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/shared/apperr"
)

// PropertiesCollection is the collection holding property documents.
const PropertiesCollection = "properties"

type propertyDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	OwnerID     bson.ObjectID `bson:"ownerId"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Price       float64       `bson:"price"`
	Address     string        `bson:"address"`
	City        string        `bson:"city"`
	Country     string        `bson:"country"`
	Image       string        `bson:"image"`
	Bedrooms    *int          `bson:"bedrooms,omitempty"`
	Bathrooms   *int          `bson:"bathrooms,omitempty"`
	Area        *float64      `bson:"area,omitempty"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func (d *propertyDocument) toEntity() entity.Property {
	return entity.Property{
		ID:          d.ID.Hex(),
		OwnerID:     d.OwnerID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Address:     d.Address,
		City:        d.City,
		Country:     d.Country,
		Image:       d.Image,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Area:        d.Area,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type propertyMongo struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ usecase.PropertyRepository = (*propertyMongo)(nil)
var _ relationusecase.PropertyRepository = (*propertyMongo)(nil)

// NewPropertyMongo creates a property store on the properties collection of db.
func NewPropertyMongo(db *mongo.Database) *propertyMongo {
	return &propertyMongo{coll: db.Collection(PropertiesCollection), now: time.Now}
}

// EnsureIndexes creates the owner lookup index.
func (r *propertyMongo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerId", Value: 1}},
		Options: options.Index().SetName("owner_id"),
	})
	return err
}

func (r *propertyMongo) List(ctx context.Context) ([]entity.Property, error) {
	return r.find(ctx, bson.D{})
}

// FindByID treats a malformed id as an unknown property.
func (r *propertyMongo) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrPropertyNotFound
	}
	var doc propertyDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrPropertyNotFound
		}
		return nil, err
	}
	p := doc.toEntity()
	return &p, nil
}

// FindByIDs skips ids that are not valid ObjectIDs.
func (r *propertyMongo) FindByIDs(ctx context.Context, ids []string) ([]entity.Property, error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []entity.Property{}, nil
	}
	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
}

func (r *propertyMongo) Create(ctx context.Context, p *entity.Property) error {
	owner, err := bson.ObjectIDFromHex(p.OwnerID)
	if err != nil {
		return apperr.Invalid("ownerId", "is not a valid id")
	}
	now := r.now().UTC().Truncate(time.Millisecond)
	doc := propertyDocument{
		ID:          bson.NewObjectID(),
		OwnerID:     owner,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
		Image:       p.Image,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// Update sets every listing field and unsets optional fields the input omitted.
func (r *propertyMongo) Update(ctx context.Context, id string, p *entity.Property) (*entity.Property, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrPropertyNotFound
	}
	set := bson.D{
		{Key: "title", Value: p.Title},
		{Key: "description", Value: p.Description},
		{Key: "price", Value: p.Price},
		{Key: "address", Value: p.Address},
		{Key: "city", Value: p.City},
		{Key: "country", Value: p.Country},
		{Key: "image", Value: p.Image},
		{Key: "updatedAt", Value: r.now().UTC().Truncate(time.Millisecond)},
	}
	unset := bson.D{}
	optional := []struct {
		key   string
		value any
		isNil bool
	}{
		{"bedrooms", p.Bedrooms, p.Bedrooms == nil},
		{"bathrooms", p.Bathrooms, p.Bathrooms == nil},
		{"area", p.Area, p.Area == nil},
	}
	for _, f := range optional {
		if f.isNil {
			unset = append(unset, bson.E{Key: f.key, Value: ""})
		} else {
			set = append(set, bson.E{Key: f.key, Value: f.value})
		}
	}
	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}

	var doc propertyDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrPropertyNotFound
		}
		return nil, err
	}
	out := doc.toEntity()
	return &out, nil
}

func (r *propertyMongo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperr.ErrPropertyNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperr.ErrPropertyNotFound
	}
	return nil
}

func (r *propertyMongo) find(ctx context.Context, filter bson.D) ([]entity.Property, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []propertyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	out := make([]entity.Property, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}
