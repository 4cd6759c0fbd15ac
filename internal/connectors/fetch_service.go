package connectors

import (
	"go.uber.org/zap"

	"wareneingang/internal/storage"
)

type FetchService struct {
	db        *storage.DB
	connector MailConnector
	store     *MailStoreService
	log       *zap.Logger
}

type FetchResult struct {
	Fetched int
	Stored  int
	New     int
}

func NewFetchService(db *storage.DB, rawMailDir string, connector MailConnector, log *zap.Logger) *FetchService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FetchService{
		db:        db,
		connector: connector,
		store:     NewMailStoreService(db, rawMailDir),
		log:       log,
	}
}

func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{Fetched: len(messages)}
	for _, msg := range messages {
		existing, err := s.db.GetDocumentByProviderMessageID(msg.Provider, msg.MessageID)
		if err != nil {
			return result, err
		}
		row, err := s.store.Store(msg)
		if err != nil {
			return result, err
		}
		result.Stored++
		if existing == nil {
			result.New++
			s.log.Info("mail stored",
				zap.String("provider", row.Provider),
				zap.String("messageId", row.MessageID),
				zap.String("subject", row.Subject))
		}
	}

	return result, nil
}
