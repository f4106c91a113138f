package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"

	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/database"
	"github.com/fabi0dev/amby/pkg/richtext"
)

func TestGormConnection(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.DocumentRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Workspace Transaction", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:           uuid.New(),
			Name:         "Integration Test",
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: "not-a-real-hash",
			CreatedAt:    time.Now(),
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		txUow := uowFactory.NewUnitOfWork(ctx)
		err = txUow.Begin(ctx)
		assert.NoError(t, err)

		workspace := &entity.Workspace{
			Id:        uuid.New(),
			Name:      "Integration Workspace",
			Slug:      "integration-" + uuid.New().String()[:8],
			OwnerId:   user.Id,
			CreatedAt: time.Now(),
		}
		err = txUow.WorkspaceRepository().Create(ctx, workspace)
		assert.NoError(t, err)

		member := &entity.WorkspaceMember{
			Id:          uuid.New(),
			WorkspaceId: workspace.Id,
			UserId:      user.Id,
			Role:        entity.WorkspaceRoleOwner,
			CreatedAt:   time.Now(),
		}
		err = txUow.WorkspaceMemberRepository().Create(ctx, member)
		assert.NoError(t, err)

		err = txUow.Commit()
		assert.NoError(t, err)

		found, err := uow.WorkspaceRepository().FindOne(ctx, specification.ByID{ID: workspace.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		// Cleanup
		_ = uow.WorkspaceMemberRepository().Delete(ctx, member.Id)
		_ = uow.WorkspaceRepository().Delete(ctx, workspace.Id)
		_ = uow.UserRepository().Delete(ctx, user.Id)
	})

	t.Run("Check Document FullText Upsert", func(t *testing.T) {
		ctx := context.Background()

		user := &entity.User{
			Id:           uuid.New(),
			Name:         "FullText Test",
			Email:        "test-fulltext-" + uuid.New().String() + "@example.com",
			PasswordHash: "not-a-real-hash",
			CreatedAt:    time.Now(),
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		workspace := &entity.Workspace{
			Id:        uuid.New(),
			Name:      "FullText Workspace",
			Slug:      "fulltext-" + uuid.New().String()[:8],
			OwnerId:   user.Id,
			CreatedAt: time.Now(),
		}
		err = uow.WorkspaceRepository().Create(ctx, workspace)
		assert.NoError(t, err)

		document := &entity.Document{
			Id:          uuid.New(),
			WorkspaceId: workspace.Id,
			Title:       "Runbook de Deploy",
			Slug:        "runbook-" + uuid.New().String()[:8],
			Content:     richtext.FromMarkdown("## Passos\n\nRodar o pipeline."),
			CreatedById: user.Id,
			CreatedAt:   time.Now(),
		}
		err = uow.DocumentRepository().Create(ctx, document)
		assert.NoError(t, err)

		fulltext := &entity.DocumentFullText{
			DocumentId:  document.Id,
			WorkspaceId: workspace.Id,
			Title:       document.Title,
			Body:        richtext.PlainText(document.Content),
			IndexedAt:   time.Now(),
		}
		err = uow.DocumentFullTextRepository().Upsert(ctx, fulltext)
		assert.NoError(t, err)

		// Second upsert must replace, not duplicate.
		fulltext.Body = "Rodar o pipeline com aprovação."
		err = uow.DocumentFullTextRepository().Upsert(ctx, fulltext)
		assert.NoError(t, err)

		rows, err := uow.DocumentFullTextRepository().FindAll(ctx,
			specification.ByDocumentID{DocumentID: document.Id},
		)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		if len(rows) == 1 {
			assert.Contains(t, rows[0].Body, "aprovação")
		}

		// Cleanup
		_ = uow.DocumentFullTextRepository().DeleteByDocumentId(ctx, document.Id)
		_ = uow.DocumentRepository().Delete(ctx, document.Id)
		_ = uow.WorkspaceRepository().Delete(ctx, workspace.Id)
		_ = uow.UserRepository().Delete(ctx, user.Id)
	})
}
