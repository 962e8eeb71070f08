// Package messages records contact-form submissions.
package messages

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodstore/internal/common"
	"github.com/dmitrijs2005/foodstore/internal/logging"
	"github.com/dmitrijs2005/foodstore/internal/server/models"
	"github.com/dmitrijs2005/foodstore/internal/server/recordstore"
	"github.com/dmitrijs2005/foodstore/internal/timex"
)

type Log struct {
	store  recordstore.Store[models.ContactMessage]
	now    timex.Clock
	logger logging.Logger
}

// NewLog builds the message log. A nil clock means timex.UTC.
func NewLog(store recordstore.Store[models.ContactMessage], now timex.Clock, logger logging.Logger) *Log {
	if now == nil {
		now = timex.UTC
	}
	return &Log{store: store, now: now, logger: logger.With("module", "messages")}
}

// Record stores a message stamped with the current UTC time.
func (l *Log) Record(ctx context.Context, name, email, message string) error {
	if name == "" || email == "" || message == "" {
		return fmt.Errorf("%w: name, email and message are required", common.ErrorValidation)
	}

	_, err := l.store.Append(ctx, func([]models.ContactMessage) (models.ContactMessage, error) {
		return models.ContactMessage{
			Name:    name,
			Email:   email,
			Message: message,
			Date:    l.now().UTC().Format(common.TimestampLayout),
		}, nil
	})
	if err != nil {
		return err
	}

	l.logger.Info(ctx, "contact message recorded", "email", email)
	return nil
}

// List returns all messages in the order they were received.
func (l *Log) List(ctx context.Context) ([]models.ContactMessage, error) {
	return l.store.Load(ctx)
}
