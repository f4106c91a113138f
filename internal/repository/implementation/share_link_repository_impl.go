package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/mapper"
	"github.com/fabi0dev/amby/internal/model"
	"github.com/fabi0dev/amby/internal/repository/contract"
	"github.com/fabi0dev/amby/internal/repository/specification"
)

type ShareLinkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ShareLinkMapper
}

func NewShareLinkRepository(db *gorm.DB) contract.ShareLinkRepository {
	return &ShareLinkRepositoryImpl{
		db:     db,
		mapper: mapper.NewShareLinkMapper(),
	}
}

func (r *ShareLinkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ShareLinkRepositoryImpl) Create(ctx context.Context, link *entity.ShareLink) error {
	m := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareLinkRepositoryImpl) Update(ctx context.Context, link *entity.ShareLink) error {
	m := r.mapper.ToModel(link)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*link = *r.mapper.ToEntity(m)
	return nil
}

func (r *ShareLinkRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ShareLink{}, id).Error
}

func (r *ShareLinkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareLink, error) {
	var m model.ShareLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ShareLinkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareLink, error) {
	var models []*model.ShareLink
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
