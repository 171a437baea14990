package databases

// go generate: mockery --name UserDatabase

import (
	"context"

	"github.com/densahealth/phcu-report-api/models"
)

const userName = "users"

// UserDatabase contains the methods to use with the reporter user database.
// It is the credential store behind the basic auth strategy.
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.User, error)
	InsertOne(ctx context.Context, userDetails models.UserDetails) (interface{}, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the
// provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) InsertOne(ctx context.Context, userDetails models.UserDetails) (interface{}, error) {
	type user struct {
		User models.UserDetails `bson:"user"`
	}
	res, err := u.db.Collection(userName).InsertOne(ctx, user{User: userDetails})
	if err != nil {
		return nil, err
	}
	return res.Decode(), nil
}
