package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/fabi0dev/amby/internal/dto"
	"github.com/fabi0dev/amby/internal/entity"
	"github.com/fabi0dev/amby/internal/pkg/logger"
	"github.com/fabi0dev/amby/internal/repository/specification"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/pkg/richtext"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService keeps the full-text index in sync with document writes.
// Each message carries the id of a document whose searchable projection must
// be rebuilt.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ReindexDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("indexer", "Failed to unmarshal reindex message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // invalid payloads are not retriable
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("indexer", "Failed to load document for reindex", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	if document == nil {
		// Deleted since the message was published; drop its index row.
		if err := uow.DocumentFullTextRepository().DeleteByDocumentId(ctx, payload.DocumentId); err != nil {
			cs.log.Error("indexer", "Failed to delete index row", map[string]interface{}{
				"document_id": payload.DocumentId.String(),
				"error":       err.Error(),
			})
			msg.Nack()
			return
		}
		msg.Ack()
		return
	}

	fulltext := &entity.DocumentFullText{
		DocumentId:  document.Id,
		WorkspaceId: document.WorkspaceId,
		Title:       document.Title,
		Body:        richtext.PlainText(document.Content),
		IndexedAt:   time.Now(),
	}

	if err := uow.DocumentFullTextRepository().Upsert(ctx, fulltext); err != nil {
		cs.log.Error("indexer", "Failed to upsert index row", map[string]interface{}{
			"document_id": payload.DocumentId.String(),
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("indexer", "Document reindexed", map[string]interface{}{
		"document_id": document.Id.String(),
	})
	msg.Ack()
}
