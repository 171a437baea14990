package databases

// go generate: mockery --name AdminDatabase

import (
	"context"

	"github.com/densahealth/phcu-report-api/models"
)

const adminName = "admins"

// AdminDatabase contains the methods to use with the admin database
type AdminDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.AdminUser, error)
}

type adminDatabase struct {
	db DatabaseHelper
}

// NewAdminDatabase initializes a new instance of admin database with the
// provided db connection
func NewAdminDatabase(db DatabaseHelper) AdminDatabase {
	return &adminDatabase{
		db: db,
	}
}

func (a *adminDatabase) FindOne(ctx context.Context, filter interface{}) (*models.AdminUser, error) {
	admin := &models.AdminUser{}
	err := a.db.Collection(adminName).FindOne(ctx, filter).Decode(&admin)
	if err != nil {
		return nil, err
	}
	return admin, nil
}
