package repository

import (
	"context"
	"printwear-storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmailSignupRepository interface {
	Upsert(ctx context.Context, signup *model.EmailSignup) error
}

type emailSignupRepoImpl struct {
	db *gorm.DB
}

func NewEmailSignupRepository(db *gorm.DB) EmailSignupRepository {
	return &emailSignupRepoImpl{
		db: db,
	}
}

func (r *emailSignupRepoImpl) Upsert(ctx context.Context, signup *model.EmailSignup) error {
	// duplicate signups are silently ignored
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(signup).Error
}
