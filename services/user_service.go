package services

import (
	"context"
	"errors"
	"log"

	"backend/models"
	"backend/repository"
	"backend/utils"
)

type UserService struct {
	users    repository.UserRepository
	streaks  repository.StreakRepository
	devices  repository.DeviceRepository
	sessions *SessionStore
	storage  ImageUploader
	push     DeviceRegistrar
}

func NewUserService(
	users repository.UserRepository,
	streaks repository.StreakRepository,
	devices repository.DeviceRepository,
	sessions *SessionStore,
	storage ImageUploader,
	push DeviceRegistrar,
) *UserService {
	return &UserService{
		users:    users,
		streaks:  streaks,
		devices:  devices,
		sessions: sessions,
		storage:  storage,
		push:     push,
	}
}

func (s *UserService) byUID(uid string) (*models.User, error) {
	user, err := s.users.ByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewAppError(utils.ErrUserNotFound)
		}
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}
	return user, nil
}

// Profile returns the authoritative snapshot and refreshes the cached one.
func (s *UserService) Profile(ctx context.Context, uid string) (*models.Snapshot, error) {
	user, err := s.byUID(uid)
	if err != nil {
		return nil, err
	}
	snap := user.ToSnapshot()
	if err := s.sessions.Save(ctx, snap); err != nil {
		log.Printf("session snapshot refresh failed for %s: %v", uid, err)
	}
	return &snap, nil
}

type ProfileUpdate struct {
	DisplayName  string `json:"displayName"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"` // base64 data URI
}

// UpdateProfile merges the provided fields into the profile. Unlike the
// signup extras, a failed image upload here fails the whole update; the
// user asked for exactly that change.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, in ProfileUpdate) (*models.Snapshot, error) {
	user, err := s.byUID(uid)
	if err != nil {
		return nil, err
	}

	if in.DisplayName != "" {
		user.DisplayName = in.DisplayName
	}
	if in.Username != "" && in.Username != user.Username {
		taken, err := s.users.UsernameExists(in.Username)
		if err != nil {
			return nil, utils.WrapAppError(utils.ErrUnavailable, err)
		}
		if taken {
			return nil, utils.NewAppError(utils.ErrAlreadyExists)
		}
		user.Username = in.Username
	}
	if in.ProfileImage != "" {
		if s.storage == nil {
			return nil, utils.NewAppError(utils.ErrUnavailable)
		}
		url, err := s.storage.UploadProfileImage(in.ProfileImage, uid)
		if err != nil {
			var appErr *utils.AppError
			if errors.As(err, &appErr) {
				return nil, appErr
			}
			return nil, utils.WrapAppError(utils.ErrRetryLimitExceeded, err)
		}
		user.PhotoURL = url
	}

	if err := s.users.Save(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewAppError(utils.ErrAlreadyExists)
		}
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}

	snap := user.ToSnapshot()
	if err := s.sessions.Save(ctx, snap); err != nil {
		log.Printf("session snapshot refresh failed for %s: %v", uid, err)
	}
	return &snap, nil
}

// ToggleNotifications records intent. Enabling may carry a freshly granted
// push token; disabling never unregisters anything, it only flips the flag.
func (s *UserService) ToggleNotifications(ctx context.Context, uid string, enabled bool, pushToken, platform string) (*models.Snapshot, error) {
	user, err := s.byUID(uid)
	if err != nil {
		return nil, err
	}

	if enabled && pushToken != "" && pushToken != user.PushToken {
		if s.push != nil && platform != "" {
			if _, err := s.push.RegisterDevice(uid, platform, pushToken); err != nil {
				log.Printf("push registration failed for %s: %v", uid, err)
			} else {
				user.PushToken = pushToken
			}
		} else {
			user.PushToken = pushToken
		}
	}

	user.NotificationsEnabled = enabled
	if err := s.users.Save(user); err != nil {
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if err := s.devices.SetEnabled(uid, enabled); err != nil {
		log.Printf("device toggle failed for %s: %v", uid, err)
	}

	snap := user.ToSnapshot()
	if err := s.sessions.Save(ctx, snap); err != nil {
		log.Printf("session snapshot refresh failed for %s: %v", uid, err)
	}
	return &snap, nil
}

// StreakDates returns the ordered set of days the user met the activity
// threshold.
func (s *UserService) StreakDates(uid string) ([]string, error) {
	dates, err := s.streaks.Dates(uid)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}
	return dates, nil
}
