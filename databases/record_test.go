package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/databases"
	"github.com/densahealth/phcu-report-api/databases/mocks"
	"github.com/densahealth/phcu-report-api/models"
)

func TestNewRecordDatabase(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	recordDB := databases.NewRecordDatabase(db)

	assert.NotEmpty(t, recordDB)
}

func TestRecordDatabase_FindOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Record)
		(*arg).Institution = "03 Derew Health Post"
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "reports").
		Return(collectionHelper)

	recordDB := databases.NewRecordDatabase(dbHelper)

	record, err := recordDB.FindOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, record)
	assert.EqualError(t, err, "mocked-error")

	record, err = recordDB.FindOne(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
	assert.Equal(t, "03 Derew Health Post", record.Institution)
}

func TestRecordDatabase_Find(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorErr databases.CursorHelper
	var cursorCorrect databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorErr = &mocks.CursorHelper{}
	cursorCorrect = &mocks.CursorHelper{}

	cursorErr.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	cursorCorrect.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Record)
		*arg = []models.Record{
			{Institution: "04 Wejed Health Post"},
			{Institution: "06 Gert Health Post"},
		}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(cursorErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "reports").
		Return(collectionHelper)

	recordDB := databases.NewRecordDatabase(dbHelper)

	records, err := recordDB.Find(context.Background(), bson.M{"error": true})
	assert.Nil(t, records)
	assert.EqualError(t, err, "mocked-error")

	records, err = recordDB.Find(context.Background(), bson.M{"error": false})
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "04 Wejed Health Post", records[0].Institution)
}

func TestRecordDatabase_InsertOne(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var iorHelper databases.InsertOneResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	iorHelper = &mocks.InsertOneResultHelper{}

	iorHelper.(*mocks.InsertOneResultHelper).
		On("Decode").
		Return("mocked-object-id")

	record := models.Record{Institution: "09 Sensa Health Post"}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), record).
		Return(iorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "reports").
		Return(collectionHelper)

	recordDB := databases.NewRecordDatabase(dbHelper)

	id, err := recordDB.InsertOne(context.Background(), record)
	assert.NoError(t, err)
	assert.Equal(t, "mocked-object-id", id)
}

func TestRecordDatabase_InsertOneStoreUnreachable(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	record := models.Record{Institution: "09 Sensa Health Post"}

	collectionHelper.(*mocks.CollectionHelper).
		On("InsertOne", context.Background(), record).
		Return(nil, errors.New("server selection timeout"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "reports").
		Return(collectionHelper)

	recordDB := databases.NewRecordDatabase(dbHelper)

	id, err := recordDB.InsertOne(context.Background(), record)
	assert.Nil(t, id)
	assert.EqualError(t, err, "server selection timeout")
}
