package impl

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"time"

	deliverycontext "aevum/internal/delivery/context"
	"aevum/internal/domain/entity"
	domainerrors "aevum/internal/domain/errors"
	"aevum/internal/domain/repository"
	"aevum/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	moodScaleMin = 1
	moodScaleMax = 10

	insightsDefaultWindowDays = 30
	insightsTopTagLimit       = 5

	daysOfWeekMaskAll = 0x7F // bits Monday..Sunday
)

var (
	monthRe     = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	timeOfDayRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// journalService implements the JournalUsecase interface.
type journalService struct {
	journalRepo repository.JournalRepository
	logger      *slog.Logger
}

// JournalServiceParams holds dependencies for JournalService, injected by Fx.
type JournalServiceParams struct {
	fx.In

	JournalRepo repository.JournalRepository
	Logger      *slog.Logger
}

// NewJournalService is the constructor for journalService.
func NewJournalService(params JournalServiceParams) usecase.JournalUsecase {
	return &journalService{
		journalRepo: params.JournalRepo,
		logger:      params.Logger,
	}
}

func (srv *journalService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateEntry persists a new journal entry for the user.
func (srv *journalService) CreateEntry(ctx context.Context, userID uuid.UUID, input *usecase.CreateJournalEntryInput) (*entity.JournalEntry, error) {
	entryDate := input.EntryDate
	if entryDate == "" {
		entryDate = time.Now().Format(entryDateLayout)
	}

	if err := validateJournalFields(input.Mood, input.Energy, entryDate); err != nil {
		return nil, err
	}

	entry := &entity.JournalEntry{
		UserID:    userID,
		Title:     input.Title,
		Content:   input.Content,
		Mood:      input.Mood,
		Energy:    input.Energy,
		Tags:      input.Tags,
		EntryDate: entryDate,
	}

	if err := srv.journalRepo.CreateEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to create journal entry")
	}

	srv.log(ctx).Debug("Journal entry created", slog.Any("userID", userID), slog.String("entryDate", entryDate))

	return entry, nil
}

// GetEntry retrieves one of the user's entries.
func (srv *journalService) GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*entity.JournalEntry, error) {
	return srv.loadOwnedEntry(ctx, userID, entryID)
}

func (srv *journalService) loadOwnedEntry(ctx context.Context, userID, entryID uuid.UUID) (*entity.JournalEntry, error) {
	entry, err := srv.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrJournalEntryNotFound) {
			return nil, domainerrors.ErrJournalEntryNotFound.WrapMessage("entry not found")
		}

		return nil, errors.Wrap(err, "failed to find journal entry")
	}

	// Another user's entry is reported as missing, not forbidden.
	if entry.UserID != userID {
		return nil, domainerrors.ErrJournalEntryNotFound.WrapMessage("entry not found")
	}

	return entry, nil
}

// ListEntries returns the user's entries, newest first.
func (srv *journalService) ListEntries(ctx context.Context, userID uuid.UUID, input *usecase.ListJournalEntriesInput) (*usecase.JournalEntryListOutput, error) {
	if err := validateDateBound(input.From); err != nil {
		return nil, err
	}
	if err := validateDateBound(input.To); err != nil {
		return nil, err
	}

	page, pageSize := normalizePage(input.Page, input.PageSize)

	entries, total, err := srv.journalRepo.ListEntriesByUser(ctx, userID, repository.JournalEntryFilter{
		From:   input.From,
		To:     input.To,
		Tag:    input.Tag,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journal entries")
	}

	return &usecase.JournalEntryListOutput{
		Entries:  entries,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UpdateEntry applies a full update to one of the user's entries.
func (srv *journalService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, input *usecase.UpdateJournalEntryInput) (*entity.JournalEntry, error) {
	entry, err := srv.loadOwnedEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	entryDate := input.EntryDate
	if entryDate == "" {
		entryDate = entry.EntryDate
	}

	if err := validateJournalFields(input.Mood, input.Energy, entryDate); err != nil {
		return nil, err
	}

	entry.Title = input.Title
	entry.Content = input.Content
	entry.Mood = input.Mood
	entry.Energy = input.Energy
	entry.Tags = input.Tags
	entry.EntryDate = entryDate

	if err := srv.journalRepo.UpdateEntry(ctx, entry); err != nil {
		return nil, errors.Wrap(err, "failed to update journal entry")
	}

	return entry, nil
}

// DeleteEntry removes one of the user's entries.
func (srv *journalService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	if _, err := srv.loadOwnedEntry(ctx, userID, entryID); err != nil {
		return err
	}

	if err := srv.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		return errors.Wrap(err, "failed to delete journal entry")
	}

	return nil
}

// GetCalendar aggregates per-day entry counts and average mood for a month.
func (srv *journalService) GetCalendar(ctx context.Context, userID uuid.UUID, month string) ([]*entity.JournalCalendarDay, error) {
	if !monthRe.MatchString(month) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("month must be formatted YYYY-MM")
	}

	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("month must be formatted YYYY-MM")
	}
	// Last day of the month: first day of next month minus one day.
	monthEnd := monthStart.AddDate(0, 1, -1)

	entries, _, err := srv.journalRepo.ListEntriesByUser(ctx, userID, repository.JournalEntryFilter{
		From: monthStart.Format(entryDateLayout),
		To:   monthEnd.Format(entryDateLayout),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entries for calendar")
	}

	// Days are keyed by the exact submitted entry_date; no timezone math.
	type dayAgg struct {
		count   int
		moodSum int
	}
	byDay := make(map[string]*dayAgg)
	for _, entry := range entries {
		agg, ok := byDay[entry.EntryDate]
		if !ok {
			agg = &dayAgg{}
			byDay[entry.EntryDate] = agg
		}
		agg.count++
		agg.moodSum += entry.Mood
	}

	days := make([]*entity.JournalCalendarDay, 0, len(byDay))
	for date, agg := range byDay {
		days = append(days, &entity.JournalCalendarDay{
			Date:        date,
			EntryCount:  agg.count,
			AverageMood: float64(agg.moodSum) / float64(agg.count),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return days, nil
}

// GetStreak computes the current and longest consecutive-day streaks.
func (srv *journalService) GetStreak(ctx context.Context, userID uuid.UUID) (*entity.JournalStreak, error) {
	dates, err := srv.journalRepo.ListEntryDatesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entry dates for streak")
	}

	streak, malformed := computeStreak(dates, time.Now())
	if malformed > 0 {
		srv.log(ctx).Warn("Skipped malformed entry dates while computing streak",
			slog.Any("userID", userID), slog.Int("malformed", malformed))
	}

	return streak, nil
}

// computeStreak derives streaks from distinct entry dates sorted descending.
// The current streak counts consecutive days ending today or yesterday.
// Dates that do not parse as YYYY-MM-DD are skipped and counted so callers
// can surface a mapping bug instead of silently reporting a zero streak.
func computeStreak(datesDesc []string, now time.Time) (*entity.JournalStreak, int) {
	streak := &entity.JournalStreak{}
	if len(datesDesc) == 0 {
		return streak, 0
	}

	malformed := 0
	days := make([]time.Time, 0, len(datesDesc))
	for _, d := range datesDesc {
		parsed, err := time.Parse(entryDateLayout, d)
		if err != nil {
			malformed++

			continue
		}
		days = append(days, parsed)
	}
	if len(days) == 0 {
		return streak, malformed
	}

	streak.LastEntryDate = days[0].Format(entryDateLayout)

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sinceLast := int(today.Sub(days[0]).Hours() / 24)

	run := 1
	longest := 1
	current := 0
	if sinceLast <= 1 {
		current = 1
	}

	for i := 1; i < len(days); i++ {
		gap := int(days[i-1].Sub(days[i]).Hours() / 24)
		if gap == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		// The current streak only grows while the run is anchored at the
		// most recent date.
		if current > 0 && run == i+1 {
			current = run
		}
	}

	streak.CurrentStreak = current
	streak.LongestStreak = longest

	return streak, malformed
}

// GetInsights summarizes activity over a date window (default last 30 days).
func (srv *journalService) GetInsights(ctx context.Context, userID uuid.UUID, input *usecase.JournalInsightsInput) (*entity.JournalInsights, error) {
	from, to := input.From, input.To
	if from == "" && to == "" {
		now := time.Now()
		to = now.Format(entryDateLayout)
		from = now.AddDate(0, 0, -(insightsDefaultWindowDays - 1)).Format(entryDateLayout)
	}
	if err := validateDateBound(from); err != nil {
		return nil, err
	}
	if err := validateDateBound(to); err != nil {
		return nil, err
	}

	entries, _, err := srv.journalRepo.ListEntriesByUser(ctx, userID, repository.JournalEntryFilter{
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entries for insights")
	}

	return computeInsights(entries), nil
}

// computeInsights aggregates entries that arrive newest-first.
func computeInsights(entries []*entity.JournalEntry) *entity.JournalInsights {
	insights := &entity.JournalInsights{TopTags: []entity.TagCount{}}
	if len(entries) == 0 {
		return insights
	}

	// Chronological order for the trend split.
	ordered := make([]*entity.JournalEntry, len(entries))
	for i, entry := range entries {
		ordered[len(entries)-1-i] = entry
	}

	var moodSum, energySum int
	tagCounts := make(map[string]int)
	for _, entry := range ordered {
		moodSum += entry.Mood
		energySum += entry.Energy
		for _, tag := range entry.Tags {
			tagCounts[tag]++
		}
	}

	n := len(ordered)
	insights.EntryCount = n
	insights.AverageMood = float64(moodSum) / float64(n)
	insights.AverageEnergy = float64(energySum) / float64(n)

	tags := make([]entity.TagCount, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tags = append(tags, entity.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}

		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > insightsTopTagLimit {
		tags = tags[:insightsTopTagLimit]
	}
	insights.TopTags = tags

	// Mood trend: second-half average minus first-half average.
	if n >= 2 {
		half := n / 2
		var firstSum, secondSum int
		for _, entry := range ordered[:half] {
			firstSum += entry.Mood
		}
		for _, entry := range ordered[half:] {
			secondSum += entry.Mood
		}
		insights.MoodTrend = float64(secondSum)/float64(n-half) - float64(firstSum)/float64(half)
	}

	return insights
}

// CreateReminder persists a new journal reminder.
func (srv *journalService) CreateReminder(ctx context.Context, userID uuid.UUID, input *usecase.JournalReminderInput) (*entity.JournalReminder, error) {
	if err := validateReminderInput(input); err != nil {
		return nil, err
	}

	reminder := &entity.JournalReminder{
		UserID:     userID,
		TimeOfDay:  input.TimeOfDay,
		DaysOfWeek: input.DaysOfWeek,
		Message:    input.Message,
		Enabled:    input.Enabled,
	}

	if err := srv.journalRepo.CreateReminder(ctx, reminder); err != nil {
		return nil, errors.Wrap(err, "failed to create journal reminder")
	}

	return reminder, nil
}

// ListReminders returns the user's reminders.
func (srv *journalService) ListReminders(ctx context.Context, userID uuid.UUID) ([]*entity.JournalReminder, error) {
	reminders, err := srv.journalRepo.ListRemindersByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list journal reminders")
	}

	return reminders, nil
}

// UpdateReminder updates one of the user's reminders.
func (srv *journalService) UpdateReminder(ctx context.Context, userID, reminderID uuid.UUID, input *usecase.JournalReminderInput) (*entity.JournalReminder, error) {
	if err := validateReminderInput(input); err != nil {
		return nil, err
	}

	reminder, err := srv.loadOwnedReminder(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	reminder.TimeOfDay = input.TimeOfDay
	reminder.DaysOfWeek = input.DaysOfWeek
	reminder.Message = input.Message
	reminder.Enabled = input.Enabled

	if err := srv.journalRepo.UpdateReminder(ctx, reminder); err != nil {
		return nil, errors.Wrap(err, "failed to update journal reminder")
	}

	return reminder, nil
}

// DeleteReminder removes one of the user's reminders.
func (srv *journalService) DeleteReminder(ctx context.Context, userID, reminderID uuid.UUID) error {
	if _, err := srv.loadOwnedReminder(ctx, userID, reminderID); err != nil {
		return err
	}

	if err := srv.journalRepo.DeleteReminder(ctx, reminderID); err != nil {
		return errors.Wrap(err, "failed to delete journal reminder")
	}

	return nil
}

func (srv *journalService) loadOwnedReminder(ctx context.Context, userID, reminderID uuid.UUID) (*entity.JournalReminder, error) {
	reminder, err := srv.journalRepo.FindReminderByID(ctx, reminderID)
	if err != nil {
		if errors.Is(err, repository.ErrReminderNotFound) {
			return nil, domainerrors.ErrReminderNotFound.WrapMessage("reminder not found")
		}

		return nil, errors.Wrap(err, "failed to find journal reminder")
	}
	if reminder.UserID != userID {
		return nil, domainerrors.ErrReminderNotFound.WrapMessage("reminder not found")
	}

	return reminder, nil
}

func validateJournalFields(mood, energy int, entryDate string) error {
	if mood < moodScaleMin || mood > moodScaleMax {
		return domainerrors.ErrValidationFailed.WithDetails("mood must be between 1 and 10")
	}
	if energy < moodScaleMin || energy > moodScaleMax {
		return domainerrors.ErrValidationFailed.WithDetails("energy must be between 1 and 10")
	}
	if _, err := time.Parse(entryDateLayout, entryDate); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("entry_date must be formatted YYYY-MM-DD")
	}

	return nil
}

func validateDateBound(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(entryDateLayout, date); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("dates must be formatted YYYY-MM-DD")
	}

	return nil
}

func validateReminderInput(input *usecase.JournalReminderInput) error {
	if !timeOfDayRe.MatchString(input.TimeOfDay) {
		return domainerrors.ErrValidationFailed.WithDetails("time_of_day must be formatted HH:MM")
	}
	if input.DaysOfWeek < 1 || input.DaysOfWeek > daysOfWeekMaskAll {
		return domainerrors.ErrValidationFailed.WithDetails("days_of_week mask must select at least one day")
	}

	return nil
}
