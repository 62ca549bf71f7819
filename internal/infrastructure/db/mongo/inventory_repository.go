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

	"github.com/cse-motors/dealership/internal/core/domain"
)

const (
	classificationCollection = "classifications"
	vehicleCollection        = "vehicles"
)

type MongoInventoryRepository struct {
	classifications *mongo.Collection
	vehicles        *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *MongoInventoryRepository {
	return &MongoInventoryRepository{
		classifications: db.Collection(classificationCollection),
		vehicles:        db.Collection(vehicleCollection),
	}
}

type mongoClassification struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type mongoVehicle struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Make             string             `bson:"make"`
	Model            string             `bson:"model"`
	Year             int                `bson:"year"`
	Description      string             `bson:"description"`
	Image            string             `bson:"image"`
	Thumbnail        string             `bson:"thumbnail"`
	Price            float64            `bson:"price"`
	Miles            int                `bson:"miles"`
	Color            string             `bson:"color"`
	ClassificationID primitive.ObjectID `bson:"classification_id"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

func (m *mongoVehicle) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:               m.ID.Hex(),
		Make:             m.Make,
		Model:            m.Model,
		Year:             m.Year,
		Description:      m.Description,
		Image:            m.Image,
		Thumbnail:        m.Thumbnail,
		Price:            m.Price,
		Miles:            m.Miles,
		Color:            m.Color,
		ClassificationID: m.ClassificationID.Hex(),
		CreatedAt:        unixToTime(m.CreatedAt),
		UpdatedAt:        unixToTime(m.UpdatedAt),
	}
}

func vehicleDoc(v *domain.Vehicle) (*mongoVehicle, error) {
	cid, err := primitive.ObjectIDFromHex(v.ClassificationID)
	if err != nil {
		return nil, domain.ErrClassificationNotFound
	}
	return &mongoVehicle{
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            v.Price,
		Miles:            v.Miles,
		Color:            v.Color,
		ClassificationID: cid,
	}, nil
}

func (r *MongoInventoryRepository) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.classifications.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Classification
	for cur.Next(ctx) {
		var mc mongoClassification
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode classification: %w", err)
		}
		out = append(out, domain.Classification{ID: mc.ID.Hex(), Name: mc.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) CreateClassification(ctx context.Context, name string) (*domain.Classification, error) {
	res, err := r.classifications.InsertOne(ctx, mongoClassification{Name: name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClassificationExists
		}
		return nil, fmt.Errorf("insert classification: %w", err)
	}
	return &domain.Classification{ID: res.InsertedID.(primitive.ObjectID).Hex(), Name: name}, nil
}

func (r *MongoInventoryRepository) FindVehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *MongoInventoryRepository) ListVehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error) {
	cid, err := primitive.ObjectIDFromHex(classificationID)
	if err != nil {
		return nil, domain.ErrClassificationNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "make", Value: 1}, {Key: "model", Value: 1}})
	cur, err := r.vehicles.Find(ctx, bson.M{"classification_id": cid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return r.decodeVehicles(ctx, cur)
}

func (r *MongoInventoryRepository) CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	doc, err := vehicleDoc(v)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Unix()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.vehicles.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MongoInventoryRepository) UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(v.ID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}
	doc, err := vehicleDoc(v)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"make":              doc.Make,
		"model":             doc.Model,
		"year":              doc.Year,
		"description":       doc.Description,
		"image":             doc.Image,
		"thumbnail":         doc.Thumbnail,
		"price":             doc.Price,
		"miles":             doc.Miles,
		"color":             doc.Color,
		"classification_id": doc.ClassificationID,
		"updated_at":        time.Now().UTC().Unix(),
	}}

	var mv mongoVehicle
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.vehicles.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *MongoInventoryRepository) DeleteVehicle(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	res, err := r.vehicles.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *MongoInventoryRepository) SearchVehicles(ctx context.Context, f domain.SearchFilter) ([]domain.Vehicle, error) {
	filter := bson.M{}
	if f.Make != "" {
		filter["make"] = bson.M{"$regex": primitive.Regex{Pattern: f.Make, Options: "i"}}
	}
	if f.Model != "" {
		filter["model"] = bson.M{"$regex": primitive.Regex{Pattern: f.Model, Options: "i"}}
	}
	if f.YearMin > 0 || f.YearMax > 0 {
		year := bson.M{}
		if f.YearMin > 0 {
			year["$gte"] = f.YearMin
		}
		if f.YearMax > 0 {
			year["$lte"] = f.YearMax
		}
		filter["year"] = year
	}
	if f.PriceMin > 0 || f.PriceMax > 0 {
		price := bson.M{}
		if f.PriceMin > 0 {
			price["$gte"] = f.PriceMin
		}
		if f.PriceMax > 0 {
			price["$lte"] = f.PriceMax
		}
		filter["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "make", Value: 1}, {Key: "model", Value: 1}})
	cur, err := r.vehicles.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	return r.decodeVehicles(ctx, cur)
}

func (r *MongoInventoryRepository) CountVehicles(ctx context.Context) (int64, error) {
	n, err := r.vehicles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return n, nil
}

func (r *MongoInventoryRepository) AveragePrice(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$price"}}}},
	}
	cur, err := r.vehicles.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average price: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Avg float64 `bson:"avg"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, fmt.Errorf("decode average price: %w", err)
		}
	}
	return row.Avg, nil
}

// CountByClassification left-joins classifications against their vehicles so
// empty categories still show up with a zero count.
func (r *MongoInventoryRepository) CountByClassification(ctx context.Context) ([]domain.ClassificationCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         vehicleCollection,
			"localField":   "_id",
			"foreignField": "classification_id",
			"as":           "vehicles",
		}}},
		{{Key: "$project", Value: bson.M{
			"name":  1,
			"count": bson.M{"$size": "$vehicles"},
		}}},
		{{Key: "$sort", Value: bson.M{"name": 1}}},
	}

	cur, err := r.classifications.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by classification: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.ClassificationCount
	for cur.Next(ctx) {
		var row struct {
			Name  string `bson:"name"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode classification count: %w", err)
		}
		out = append(out, domain.ClassificationCount{Name: row.Name, Count: row.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("count by classification: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) decodeVehicles(ctx context.Context, cur *mongo.Cursor) ([]domain.Vehicle, error) {
	defer cur.Close(ctx)

	var out []domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
		out = append(out, *mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}
