package impl

import (
	"context"
	"log/slog"
	"regexp"
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

const entryDateLayout = "2006-01-02"

var (
	phoneRe      = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)
	postalCodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 \-]{1,8}[A-Za-z0-9]$`)
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile loads the user with their health profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile owner not found")
		}

		return nil, errors.Wrap(err, "failed to load user profile")
	}

	return user, nil
}

// UpdateProfile applies a partial update; only non-nil input fields are written.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile owner not found")
		}

		return nil, errors.Wrap(err, "failed to load user for profile update")
	}

	if user.Profile == nil {
		user.Profile = &entity.UserProfile{UserID: user.ID}
	}

	applyProfileInput(user, input)

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return user, nil
}

// GetUserRoles returns the role names derived from the user's profiles.
func (srv *profileService) GetUserRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for role lookup")
	}

	return extractUserRoles(user).ToStrings(), nil
}

func validateProfileInput(input *usecase.UpdateProfileInput) error {
	if input.DateOfBirth != nil {
		dob, err := time.Parse(entryDateLayout, *input.DateOfBirth)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("date_of_birth must be formatted YYYY-MM-DD")
		}
		if dob.After(time.Now()) {
			return domainerrors.ErrValidationFailed.WithDetails("date_of_birth must be in the past")
		}
	}

	if input.Phone != nil && *input.Phone != "" && !phoneRe.MatchString(*input.Phone) {
		return domainerrors.ErrValidationFailed.WithDetails("phone number format is invalid")
	}

	if input.PostalCode != nil && *input.PostalCode != "" && !postalCodeRe.MatchString(*input.PostalCode) {
		return domainerrors.ErrValidationFailed.WithDetails("postal code format is invalid")
	}

	if input.HeightCm != nil && (*input.HeightCm <= 0 || *input.HeightCm > 300) {
		return domainerrors.ErrValidationFailed.WithDetails("height_cm is out of range")
	}

	if input.WeightKg != nil && (*input.WeightKg <= 0 || *input.WeightKg > 700) {
		return domainerrors.ErrValidationFailed.WithDetails("weight_kg is out of range")
	}

	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return domainerrors.ErrValidationFailed.WithDetails("sleep_hours is out of range")
	}

	return nil
}

//nolint:gocyclo // A flat field-by-field merge reads better than reflection.
func applyProfileInput(user *entity.User, input *usecase.UpdateProfileInput) {
	profile := user.Profile

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.DateOfBirth != nil {
		dob, _ := time.Parse(entryDateLayout, *input.DateOfBirth)
		profile.DateOfBirth = &dob
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.HeightCm != nil {
		profile.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		profile.WeightKg = input.WeightKg
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.AddressLine != nil {
		profile.AddressLine = *input.AddressLine
	}
	if input.City != nil {
		profile.City = *input.City
	}
	if input.PostalCode != nil {
		profile.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		profile.Country = *input.Country
	}
	if input.ActivityLevel != nil {
		profile.ActivityLevel = *input.ActivityLevel
	}
	if input.SleepHours != nil {
		profile.SleepHours = input.SleepHours
	}
	if input.Smoker != nil {
		profile.Smoker = input.Smoker
	}
	if input.AlcoholUse != nil {
		profile.AlcoholUse = *input.AlcoholUse
	}
	if input.DietaryStyle != nil {
		profile.DietaryStyle = *input.DietaryStyle
	}
	if input.ResearchConsent != nil {
		profile.ResearchConsent = *input.ResearchConsent
	}
	if input.MarketingConsent != nil {
		profile.MarketingConsent = *input.MarketingConsent
	}
}
