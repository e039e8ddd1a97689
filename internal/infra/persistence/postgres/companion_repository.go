package postgres

import (
	"context"
	"time"

	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// companionRepository implements the domain.CompanionRepository interface using GORM.
type companionRepository struct {
	db *gorm.DB
}

// NewCompanionRepository is the constructor for companionRepository.
func NewCompanionRepository(db *gorm.DB) repository.CompanionRepository {
	return &companionRepository{db: db}
}

// CreateThread persists a new thread.
func (repo *companionRepository) CreateThread(ctx context.Context, thread *entity.CompanionThread) error {
	threadM := fromThreadDomain(thread)
	if threadM.LastMessageAt.IsZero() {
		threadM.LastMessageAt = time.Now()
	}

	if err := repo.db.WithContext(ctx).Create(threadM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create companion thread")
	}

	thread.ID = threadM.ID
	thread.LastMessageAt = threadM.LastMessageAt
	thread.CreatedAt = threadM.CreatedAt

	return nil
}

// FindThreadByID retrieves a thread without its messages.
func (repo *companionRepository) FindThreadByID(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error) {
	var threadM model.CompanionThreadModel

	err := repo.db.WithContext(ctx).First(&threadM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrThreadNotFound
		}

		return nil, errors.Wrap(err, "failed to find thread by id")
	}

	return toThreadDomain(&threadM), nil
}

// FindThreadWithMessages retrieves a thread with messages ordered by sequence.
func (repo *companionRepository) FindThreadWithMessages(ctx context.Context, id uuid.UUID) (*entity.CompanionThread, error) {
	var threadM model.CompanionThreadModel

	err := repo.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&threadM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrThreadNotFound
		}

		return nil, errors.Wrap(err, "failed to find thread with messages")
	}

	return toThreadDomain(&threadM), nil
}

// ListThreadsByUser returns a user's threads, most recently active first.
func (repo *companionRepository) ListThreadsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CompanionThread, error) {
	var threadModels []*model.CompanionThreadModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_message_at DESC").
		Find(&threadModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	threads := make([]*entity.CompanionThread, 0, len(threadModels))
	for _, threadM := range threadModels {
		threads = append(threads, toThreadDomain(threadM))
	}

	return threads, nil
}

// DeleteThread removes a thread and its messages.
func (repo *companionRepository) DeleteThread(ctx context.Context, id uuid.UUID) error {
	// Messages first to satisfy the FK; the thread row follows.
	err := repo.db.WithContext(ctx).
		Delete(&model.CompanionMessageModel{}, "thread_id = ?", id).Error
	if err != nil {
		return errors.WithStack(err)
	}

	result := repo.db.WithContext(ctx).Delete(&model.CompanionThreadModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrThreadNotFound
	}

	return nil
}

// appendSequenceAttempts bounds retries when concurrent writers race for
// the same sequence number on one thread.
const appendSequenceAttempts = 3

// AppendMessage persists a message with the next sequence number for its
// thread and bumps the thread's last-activity timestamp. A concurrent send
// to the same thread can claim the sequence first; the unique index rejects
// the duplicate and the insert is retried with a fresh number.
func (repo *companionRepository) AppendMessage(ctx context.Context, message *entity.CompanionMessage) error {
	messageM := fromMessageDomain(message)

	for attempt := 1; ; attempt++ {
		// COALESCE keeps the first message of a thread at sequence 1.
		err := repo.db.WithContext(ctx).
			Model(&model.CompanionMessageModel{}).
			Select("COALESCE(MAX(sequence), 0) + 1").
			Where("thread_id = ?", message.ThreadID).
			Scan(&messageM.Sequence).Error
		if err != nil {
			return errors.WithStack(err)
		}

		err = repo.db.WithContext(ctx).Create(messageM).Error
		if err == nil {
			break
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrThreadNotFound
		}
		if isUniqueConstraintViolation(err) && attempt < appendSequenceAttempts {
			continue
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append companion message")
	}

	err := repo.db.WithContext(ctx).
		Model(&model.CompanionThreadModel{}).
		Where("id = ?", message.ThreadID).
		Update("last_message_at", messageM.CreatedAt).Error
	if err != nil {
		return errors.WithStack(err)
	}

	message.ID = messageM.ID
	message.Sequence = messageM.Sequence
	message.CreatedAt = messageM.CreatedAt

	return nil
}

// ListRecentMessages returns the last n messages of a thread in sequence order.
func (repo *companionRepository) ListRecentMessages(ctx context.Context, threadID uuid.UUID, n int) ([]*entity.CompanionMessage, error) {
	var messageModels []*model.CompanionMessageModel

	query := repo.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("sequence DESC")
	if n > 0 {
		query = query.Limit(n)
	}

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	// Reverse into ascending sequence order for callers.
	messages := make([]*entity.CompanionMessage, len(messageModels))
	for i, messageM := range messageModels {
		messages[len(messageModels)-1-i] = toMessageDomain(messageM)
	}

	return messages, nil
}

// --- Mapper Functions ---

// toThreadDomain converts a GORM CompanionThreadModel to a domain entity.
func toThreadDomain(data *model.CompanionThreadModel) *entity.CompanionThread {
	if data == nil {
		return nil
	}

	messages := make([]*entity.CompanionMessage, 0, len(data.Messages))
	for _, messageM := range data.Messages {
		messages = append(messages, toMessageDomain(messageM))
	}

	return &entity.CompanionThread{
		ID:            data.ID,
		UserID:        data.UserID,
		Persona:       data.Persona,
		Title:         data.Title,
		LastMessageAt: data.LastMessageAt,
		Messages:      messages,
		CreatedAt:     data.CreatedAt,
	}
}

// fromThreadDomain converts a domain entity to a GORM CompanionThreadModel.
func fromThreadDomain(data *entity.CompanionThread) *model.CompanionThreadModel {
	if data == nil {
		return nil
	}

	return &model.CompanionThreadModel{
		ID:            data.ID,
		UserID:        data.UserID,
		Persona:       data.Persona,
		Title:         data.Title,
		LastMessageAt: data.LastMessageAt,
	}
}

// toMessageDomain converts a GORM CompanionMessageModel to a domain entity.
func toMessageDomain(data *model.CompanionMessageModel) *entity.CompanionMessage {
	if data == nil {
		return nil
	}

	return &entity.CompanionMessage{
		ID:        data.ID,
		ThreadID:  data.ThreadID,
		Sender:    data.Sender,
		Content:   data.Content,
		Sequence:  data.Sequence,
		CreatedAt: data.CreatedAt,
	}
}

// fromMessageDomain converts a domain entity to a GORM CompanionMessageModel.
func fromMessageDomain(data *entity.CompanionMessage) *model.CompanionMessageModel {
	if data == nil {
		return nil
	}

	return &model.CompanionMessageModel{
		ID:       data.ID,
		ThreadID: data.ThreadID,
		Sender:   data.Sender,
		Content:  data.Content,
		Sequence: data.Sequence,
	}
}
