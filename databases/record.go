package databases

// go generate: mockery --name RecordDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/densahealth/phcu-report-api/models"
)

const recordName = "reports"

// RecordDatabase contains the methods to use with the report record store.
// The store is append-only: no update or delete methods exist.
type RecordDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Record, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Record, error)
	InsertOne(ctx context.Context, record models.Record, opts ...*options.InsertOneOptions) (interface{}, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type recordDatabase struct {
	db DatabaseHelper
}

// NewRecordDatabase initializes a new instance of record database with the
// provided db connection
func NewRecordDatabase(db DatabaseHelper) RecordDatabase {
	return &recordDatabase{
		db: db,
	}
}

func (c *recordDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Record, error) {
	record := &models.Record{}
	err := c.db.Collection(recordName).FindOne(ctx, filter).Decode(&record)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (c *recordDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Record, error) {
	var records []models.Record
	err := c.db.Collection(recordName).Find(ctx, filter, opts...).Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (c *recordDatabase) InsertOne(ctx context.Context, record models.Record, opts ...*options.InsertOneOptions) (interface{}, error) {
	res, err := c.db.Collection(recordName).InsertOne(ctx, record, opts...)
	if err != nil {
		return nil, err
	}
	return res.Decode(), nil
}

func (c *recordDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(recordName).CountDocuments(ctx, filter)
}
