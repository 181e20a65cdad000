package repository

import (
	"context"
	"fmt"
	"time"

	"docportal/pkg/config"
	"docportal/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "appointmentOptions"
)

type mongoCatalogRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// CatalogRepository reads the treatment catalog. The catalog is maintained
// out of band, so there are no write operations.
type CatalogRepository interface {
	FindAll(ctx context.Context) ([]*model.AppointmentOption, error)
	FindNames(ctx context.Context) ([]*model.SpecialtyOption, error)
}

func NewMongoCatalogRepository(cfg *config.Config) CatalogRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCatalogRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCatalogRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCatalogRepository) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	var catalog []*model.AppointmentOption
	if err = cursor.All(ctx, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}

	return catalog, nil
}

func (r *mongoCatalogRepository) FindNames(ctx context.Context) ([]*model.SpecialtyOption, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to project appointment option names: %w", err)
	}
	defer cursor.Close(ctx)

	var names []*model.SpecialtyOption
	if err = cursor.All(ctx, &names); err != nil {
		return nil, fmt.Errorf("failed to decode specialty options: %w", err)
	}

	return names, nil
}
