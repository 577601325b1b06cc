package services

import (
	"context"
	"errors"
	"strings"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/pkg/logger"
)

type UpdateMeInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordInput struct {
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ProvisionInput creates an identity and its profile in one administrative action.
type ProvisionInput struct {
	Email             string      `json:"email" validate:"required,email"`
	Password          string      `json:"password" validate:"required,min=8,max=72"`
	Name              string      `json:"name" validate:"required,max=255"`
	Role              models.Role `json:"role" validate:"required,oneof=ADMIN SELLER"`
	IsExclusiveMember bool        `json:"isExclusiveMember"`
}

// ProfileService manages application profiles and the actor's own account settings.
type ProfileService struct {
	profiles repositories.ProfileRepository
	provider IdentityProvider
	log      *logger.Logger
}

func NewProfileService(profiles repositories.ProfileRepository, provider IdentityProvider, log *logger.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, provider: provider, log: log.With("service", "ProfileService")}
}

// UnlinkDiscord clears the actor's Discord linkage and returns the updated profile.
func (s *ProfileService) UnlinkDiscord(ctx context.Context, actor *models.Profile) (*models.Profile, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	if err := s.profiles.ClearDiscord(ctx, actor.ID); err != nil {
		return nil, mapRepoError(err, "profile not found", "failed to unlink discord")
	}
	return s.reload(ctx, actor.ID)
}

// UpdateMe changes the actor's display name and email. An email change is applied to the
// identity first and restored there if the profile write fails.
func (s *ProfileService) UpdateMe(ctx context.Context, actor *models.Profile, in UpdateMeInput) (*models.Profile, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	profile, err := s.profiles.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, mapRepoError(err, "profile not found", "failed to load profile")
	}
	if in.Name != nil {
		profile.Name = strings.TrimSpace(*in.Name)
	}
	previousEmail := profile.Email
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != profile.Email {
			if err := s.provider.UpdateEmail(ctx, profile.UserID, email); err != nil {
				return nil, err
			}
			profile.Email = email
		}
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		if profile.Email != previousEmail {
			if rbErr := s.provider.UpdateEmail(ctx, profile.UserID, previousEmail); rbErr != nil {
				s.log.Error("Failed to restore identity email", "profileId", profile.ID, "userId", profile.UserID, "error", rbErr)
			}
		}
		return nil, apperr.Internal("failed to update profile", err)
	}
	return s.reload(ctx, actor.ID)
}

func (s *ProfileService) ChangePassword(ctx context.Context, actor *models.Profile, in ChangePasswordInput) error {
	if actor == nil {
		return apperr.Unauthenticated("not authenticated")
	}
	if in.Password != in.ConfirmPassword {
		return apperr.InvalidInput("passwords do not match", map[string]string{"confirmPassword": "must match password"})
	}
	return s.provider.UpdatePassword(ctx, actor.UserID, in.Password)
}

func (s *ProfileService) ListProfiles(ctx context.Context, actor *models.Profile) ([]models.Profile, error) {
	if !access.IsAuthorized(actor, access.ManageProfiles) {
		return nil, apperr.Forbidden("only admins can list profiles")
	}
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list profiles", err)
	}
	return profiles, nil
}

// Provision creates an identity and a profile with the next vendor number.
func (s *ProfileService) Provision(ctx context.Context, actor *models.Profile, in ProvisionInput) (*models.Profile, error) {
	if !access.IsAuthorized(actor, access.ManageProfiles) {
		return nil, apperr.Forbidden("only admins can provision profiles")
	}
	identity, err := s.provider.CreateIdentity(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return s.createProfile(ctx, identity, in.Name, in.Role, in.IsExclusiveMember)
}

// EnsureAdmin seeds an admin identity and profile for email unless a profile already uses it.
func (s *ProfileService) EnsureAdmin(ctx context.Context, email, password, name string) (*models.Profile, error) {
	existing, err := s.profiles.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Internal("failed to look up profile", err)
	}

	identity, err := s.provider.CreateIdentity(ctx, email, password)
	if err != nil {
		if !apperr.Is(err, apperr.KindConflict) {
			return nil, err
		}
		// The identity exists without a profile; sign in to recover its id.
		if identity, _, err = s.provider.SignIn(ctx, email, password); err != nil {
			return nil, err
		}
	}
	profile, err := s.createProfile(ctx, identity, name, models.RoleAdmin, false)
	if err != nil {
		return nil, err
	}
	s.log.Info("Seeded admin profile", "email", profile.Email, "vendorId", profile.VendorID())
	return profile, nil
}

func (s *ProfileService) createProfile(ctx context.Context, identity *Identity, name string, role models.Role, exclusive bool) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:            identity.ID,
		Email:             identity.Email,
		Name:              strings.TrimSpace(name),
		Role:              role,
		IsExclusiveMember: exclusive,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperr.Conflict("profile already exists for this user")
		}
		return nil, apperr.Internal("failed to create profile", err)
	}
	return profile, nil
}

func (s *ProfileService) reload(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "profile not found", "failed to reload profile")
	}
	return profile, nil
}
