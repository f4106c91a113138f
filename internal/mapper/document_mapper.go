package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/model"
	"github.com/fabi0dev/amby/pkg/richtext"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	// Unparseable content falls back to an empty document rather than
	// failing the whole read.
	content := richtext.EmptyDoc()
	if len(d.Content) > 0 {
		var parsed richtext.Node
		if err := json.Unmarshal(d.Content, &parsed); err == nil && parsed.Type != "" {
			content = parsed
		}
	}

	return &entity.Document{
		Id:          d.Id,
		WorkspaceId: d.WorkspaceId,
		ProjectId:   d.ProjectId,
		ParentId:    d.ParentId,
		Title:       d.Title,
		Slug:        d.Slug,
		Content:     content,
		CreatedById: d.CreatedById,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   d.DeletedAt.Valid,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	} else if d.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	content, err := json.Marshal(d.Content)
	if err != nil {
		content, _ = json.Marshal(richtext.EmptyDoc())
	}

	return &model.Document{
		Id:          d.Id,
		WorkspaceId: d.WorkspaceId,
		ProjectId:   d.ProjectId,
		ParentId:    d.ParentId,
		Title:       d.Title,
		Slug:        d.Slug,
		Content:     datatypes.JSON(content),
		CreatedById: d.CreatedById,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) FullTextToEntity(f *model.DocumentFullText) *entity.DocumentFullText {
	if f == nil {
		return nil
	}
	return &entity.DocumentFullText{
		DocumentId:  f.DocumentId,
		WorkspaceId: f.WorkspaceId,
		Title:       f.Title,
		Body:        f.Body,
		IndexedAt:   f.IndexedAt,
	}
}

func (m *DocumentMapper) FullTextToModel(f *entity.DocumentFullText) *model.DocumentFullText {
	if f == nil {
		return nil
	}
	return &model.DocumentFullText{
		DocumentId:  f.DocumentId,
		WorkspaceId: f.WorkspaceId,
		Title:       f.Title,
		Body:        f.Body,
		IndexedAt:   f.IndexedAt,
	}
}

func (m *DocumentMapper) FullTextsToEntities(fulltexts []*model.DocumentFullText) []*entity.DocumentFullText {
	entities := make([]*entity.DocumentFullText, len(fulltexts))
	for i, f := range fulltexts {
		entities[i] = m.FullTextToEntity(f)
	}
	return entities
}
