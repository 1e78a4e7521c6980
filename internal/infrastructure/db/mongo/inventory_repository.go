package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/csemotors/dealership/internal/core/domain"
)

const (
	classificationCollection = "classifications"
	vehicleCollection        = "inventory"
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
	ClassificationID string             `bson:"classification_id"`
}

func (r *MongoInventoryRepository) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	cur, err := r.classifications.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
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
		return nil, fmt.Errorf("iterate classifications: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) FindByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error) {
	cur, err := r.vehicles.Find(ctx, bson.M{"classification_id": classificationID})
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
		out = append(out, mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	v := mv.toDomain()
	return &v, nil
}

func (mv *mongoVehicle) toDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:               mv.ID.Hex(),
		Make:             mv.Make,
		Model:            mv.Model,
		Year:             mv.Year,
		Description:      mv.Description,
		Image:            mv.Image,
		Thumbnail:        mv.Thumbnail,
		Price:            mv.Price,
		Miles:            mv.Miles,
		Color:            mv.Color,
		ClassificationID: mv.ClassificationID,
	}
}
