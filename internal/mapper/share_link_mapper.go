package mapper

import (
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/model"
)

type ShareLinkMapper struct{}

func NewShareLinkMapper() *ShareLinkMapper {
	return &ShareLinkMapper{}
}

func (m *ShareLinkMapper) ToEntity(s *model.ShareLink) *entity.ShareLink {
	if s == nil {
		return nil
	}
	return &entity.ShareLink{
		Id:          s.Id,
		DocumentId:  s.DocumentId,
		Token:       s.Token,
		CreatedById: s.CreatedById,
		ExpiresAt:   s.ExpiresAt,
		RevokedAt:   s.RevokedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ShareLinkMapper) ToModel(s *entity.ShareLink) *model.ShareLink {
	if s == nil {
		return nil
	}
	return &model.ShareLink{
		Id:          s.Id,
		DocumentId:  s.DocumentId,
		Token:       s.Token,
		CreatedById: s.CreatedById,
		ExpiresAt:   s.ExpiresAt,
		RevokedAt:   s.RevokedAt,
		CreatedAt:   s.CreatedAt,
	}
}

func (m *ShareLinkMapper) ToEntities(links []*model.ShareLink) []*entity.ShareLink {
	entities := make([]*entity.ShareLink, len(links))
	for i, s := range links {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
