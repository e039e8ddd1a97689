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

// journalDateLayout is the wire form of an entry date. The column itself is
// a Postgres date, which the driver scans as time.Time.
const journalDateLayout = "2006-01-02"

// journalRepository implements the domain.JournalRepository interface using GORM.
type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository is the constructor for journalRepository.
func NewJournalRepository(db *gorm.DB) repository.JournalRepository {
	return &journalRepository{db: db}
}

// CreateEntry persists a new journal entry.
func (repo *journalRepository) CreateEntry(ctx context.Context, entry *entity.JournalEntry) error {
	entryM, err := fromJournalEntryDomain(entry)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create journal entry")
	}

	entry.ID = entryM.ID
	entry.CreatedAt = entryM.CreatedAt
	entry.UpdatedAt = entryM.UpdatedAt

	return nil
}

// FindEntryByID retrieves a single entry.
func (repo *journalRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entryM model.JournalEntryModel

	err := repo.db.WithContext(ctx).First(&entryM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJournalEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find journal entry by id")
	}

	return toJournalEntryDomain(&entryM), nil
}

// ListEntriesByUser returns a user's entries newest-first plus the total count.
func (repo *journalRepository) ListEntriesByUser(ctx context.Context, userID uuid.UUID, filter repository.JournalEntryFilter) ([]*entity.JournalEntry, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.JournalEntryModel{}).
		Where("user_id = ?", userID)

	if filter.From != "" {
		query = query.Where("entry_date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("entry_date <= ?", filter.To)
	}
	if filter.Tag != "" {
		// Tags are stored as a JSONB array of strings.
		query = query.Where("tags @> ?", `["`+filter.Tag+`"]`)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	query = query.Order("entry_date DESC, created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entryModels []*model.JournalEntryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, errors.WithStack(err)
	}

	entries := make([]*entity.JournalEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, toJournalEntryDomain(entryM))
	}

	return entries, total, nil
}

// UpdateEntry persists mutations on an entry.
func (repo *journalRepository) UpdateEntry(ctx context.Context, entry *entity.JournalEntry) error {
	entryM, err := fromJournalEntryDomain(entry)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update journal entry")
	}

	entry.UpdatedAt = entryM.UpdatedAt

	return nil
}

// DeleteEntry removes an entry by ID.
func (repo *journalRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.JournalEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrJournalEntryNotFound
	}

	return nil
}

// ListEntryDatesByUser returns the distinct entry dates for a user, descending.
func (repo *journalRepository) ListEntryDatesByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var days []time.Time

	err := repo.db.WithContext(ctx).
		Model(&model.JournalEntryModel{}).
		Distinct("entry_date").
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Pluck("entry_date", &days).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dates := make([]string, 0, len(days))
	for _, day := range days {
		dates = append(dates, day.Format(journalDateLayout))
	}

	return dates, nil
}

// CreateReminder persists a new journal reminder.
func (repo *journalRepository) CreateReminder(ctx context.Context, reminder *entity.JournalReminder) error {
	reminderM := fromJournalReminderDomain(reminder)

	if err := repo.db.WithContext(ctx).Create(reminderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create journal reminder")
	}

	reminder.ID = reminderM.ID
	reminder.CreatedAt = reminderM.CreatedAt
	reminder.UpdatedAt = reminderM.UpdatedAt

	return nil
}

// ListRemindersByUser returns a user's reminders.
func (repo *journalRepository) ListRemindersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JournalReminder, error) {
	var reminderModels []*model.JournalReminderModel

	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time_of_day ASC").
		Find(&reminderModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	reminders := make([]*entity.JournalReminder, 0, len(reminderModels))
	for _, reminderM := range reminderModels {
		reminders = append(reminders, toJournalReminderDomain(reminderM))
	}

	return reminders, nil
}

// FindReminderByID retrieves a single reminder.
func (repo *journalRepository) FindReminderByID(ctx context.Context, id uuid.UUID) (*entity.JournalReminder, error) {
	var reminderM model.JournalReminderModel

	err := repo.db.WithContext(ctx).First(&reminderM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReminderNotFound
		}

		return nil, errors.Wrap(err, "failed to find reminder by id")
	}

	return toJournalReminderDomain(&reminderM), nil
}

// UpdateReminder persists mutations on a reminder.
func (repo *journalRepository) UpdateReminder(ctx context.Context, reminder *entity.JournalReminder) error {
	reminderM := fromJournalReminderDomain(reminder)

	if err := repo.db.WithContext(ctx).Save(reminderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update journal reminder")
	}

	reminder.UpdatedAt = reminderM.UpdatedAt

	return nil
}

// DeleteReminder removes a reminder by ID.
func (repo *journalRepository) DeleteReminder(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.JournalReminderModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReminderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toJournalEntryDomain converts a GORM JournalEntryModel to a domain entity.
// The entry date is rendered back into the exact YYYY-MM-DD day the user
// submitted, regardless of how the driver materialized the date column.
func toJournalEntryDomain(data *model.JournalEntryModel) *entity.JournalEntry {
	if data == nil {
		return nil
	}

	return &entity.JournalEntry{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		Mood:      data.Mood,
		Energy:    data.Energy,
		Tags:      data.Tags,
		EntryDate: data.EntryDate.Format(journalDateLayout),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromJournalEntryDomain converts a domain entity to a GORM JournalEntryModel.
// The usecase layer validates entry dates, so a parse failure here means a
// caller bypassed validation.
func fromJournalEntryDomain(data *entity.JournalEntry) (*model.JournalEntryModel, error) {
	if data == nil {
		return nil, nil
	}

	day, err := time.Parse(journalDateLayout, data.EntryDate)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid entry date %q", data.EntryDate)
	}

	return &model.JournalEntryModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Title:     data.Title,
		Content:   data.Content,
		Mood:      data.Mood,
		Energy:    data.Energy,
		Tags:      data.Tags,
		EntryDate: day,
		CreatedAt: data.CreatedAt,
	}, nil
}

// toJournalReminderDomain converts a GORM JournalReminderModel to a domain entity.
func toJournalReminderDomain(data *model.JournalReminderModel) *entity.JournalReminder {
	if data == nil {
		return nil
	}

	return &entity.JournalReminder{
		ID:         data.ID,
		UserID:     data.UserID,
		TimeOfDay:  data.TimeOfDay,
		DaysOfWeek: data.DaysOfWeek,
		Message:    data.Message,
		Enabled:    data.Enabled,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromJournalReminderDomain converts a domain entity to a GORM JournalReminderModel.
func fromJournalReminderDomain(data *entity.JournalReminder) *model.JournalReminderModel {
	if data == nil {
		return nil
	}

	return &model.JournalReminderModel{
		ID:         data.ID,
		UserID:     data.UserID,
		TimeOfDay:  data.TimeOfDay,
		DaysOfWeek: data.DaysOfWeek,
		Message:    data.Message,
		Enabled:    data.Enabled,
		CreatedAt:  data.CreatedAt,
	}
}
