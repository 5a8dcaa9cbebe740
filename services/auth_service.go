package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"backend/models"
	"backend/repository"
	"backend/utils"

	"github.com/google/uuid"
)

// Best-effort collaborators are injected as interfaces; a nil value just
// skips the step, which keeps the primary operation's contract intact.
type ImageUploader interface {
	UploadProfileImage(dataURI, uid string) (string, error)
}

type DeviceRegistrar interface {
	RegisterDevice(uid, platform, token string) (*models.UserDevice, error)
}

type IDTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type ResetMailer func(to, code string) error

type AuthService struct {
	users     repository.UserRepository
	streaks   repository.StreakRepository
	devices   repository.DeviceRepository
	sessions  *SessionStore
	usernames *UsernameGenerator
	push      DeviceRegistrar
	storage   ImageUploader
	google    IDTokenVerifier
	resets    *ResetTokenStore
	sendReset ResetMailer
}

func NewAuthService(
	users repository.UserRepository,
	streaks repository.StreakRepository,
	devices repository.DeviceRepository,
	sessions *SessionStore,
	usernames *UsernameGenerator,
	push DeviceRegistrar,
	storage ImageUploader,
	google IDTokenVerifier,
	resets *ResetTokenStore,
	sendReset ResetMailer,
) *AuthService {
	return &AuthService{
		users:     users,
		streaks:   streaks,
		devices:   devices,
		sessions:  sessions,
		usernames: usernames,
		push:      push,
		storage:   storage,
		google:    google,
		resets:    resets,
		sendReset: sendReset,
	}
}

type SignUpInput struct {
	Email        string
	Password     string
	DisplayName  string
	Username     string // optional; generated from DisplayName when empty
	ProfileImage string // optional base64 data URI
	PushToken    string // optional
	Platform     string // "android" | "ios", required with PushToken
}

type SessionResult struct {
	User  models.Snapshot
	Token string
}

func (s *AuthService) finishSession(ctx context.Context, user *models.User) (*SessionResult, error) {
	snap := user.ToSnapshot()
	if err := s.sessions.Save(ctx, snap); err != nil {
		// A dead cache only costs the optimistic fast path.
		log.Printf("session snapshot save failed for %s: %v", user.UID, err)
	}
	token, err := utils.GenerateJWT(user.UID)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrUnknown, err)
	}
	return &SessionResult{User: snap, Token: token}, nil
}

// registerPushToken is a best-effort step shared by the sign-in paths.
// Failures are logged and swallowed.
func (s *AuthService) registerPushToken(user *models.User, token, platform string) bool {
	if token == "" || token == user.PushToken {
		return false
	}
	if s.push != nil && platform != "" {
		if _, err := s.push.RegisterDevice(user.UID, platform, token); err != nil {
			log.Printf("push registration failed for %s: %v", user.UID, err)
			return false
		}
	}
	user.PushToken = token
	return true
}

// SignUp creates the account row, then runs the best-effort steps (push
// registration, profile image upload). The row is the identity and the
// profile at once, so a failure after creation can only lose the optional
// extras, never orphan an identity.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*SessionResult, error) {
	if len(in.Password) < 6 {
		return nil, utils.NewAppError(utils.ErrWeakPassword)
	}
	if !strings.Contains(in.Email, "@") {
		return nil, utils.NewAppError(utils.ErrInvalidEmail)
	}

	// Friendly pre-probe; the unique index is the real constraint.
	exists, err := s.users.EmailExists(in.Email)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if exists {
		return nil, utils.NewAppError(utils.ErrEmailExists)
	}

	username := in.Username
	if username == "" {
		username, err = s.usernames.Generate(in.DisplayName)
		if err != nil {
			return nil, utils.WrapAppError(utils.ErrUnavailable, err)
		}
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrUnknown, err)
	}

	user := &models.User{
		UID:                  uuid.NewString(),
		Email:                in.Email,
		Password:             hash,
		DisplayName:          in.DisplayName,
		Username:             username,
		Provider:             models.ProviderEmail,
		NotificationsEnabled: true,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Either unique index can fire; re-probe to name the loser.
			if taken, probeErr := s.users.UsernameExists(username); probeErr == nil && taken {
				return nil, utils.NewAppError(utils.ErrAlreadyExists)
			}
			return nil, utils.NewAppError(utils.ErrEmailExists)
		}
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}

	dirty := s.registerPushToken(user, in.PushToken, in.Platform)

	if in.ProfileImage != "" && s.storage != nil {
		url, err := s.storage.UploadProfileImage(in.ProfileImage, user.UID)
		if err != nil {
			log.Printf("profile image upload failed for %s: %v", user.UID, err)
		} else {
			user.PhotoURL = url
			dirty = true
		}
	}

	if dirty {
		if err := s.users.Save(user); err != nil {
			log.Printf("post-signup profile update failed for %s: %v", user.UID, err)
		}
	}

	return s.finishSession(ctx, user)
}

// SignIn authenticates an email/password user, refreshes the push token
// best effort and hands back a session.
func (s *AuthService) SignIn(ctx context.Context, email, password, pushToken, platform string) (*SessionResult, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewAppError(utils.ErrInvalidCredentials)
		}
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if user.Disabled {
		return nil, utils.NewAppError(utils.ErrUserDisabled)
	}
	if user.Provider != models.ProviderEmail || !utils.CheckPasswordHash(password, user.Password) {
		return nil, utils.NewAppError(utils.ErrInvalidCredentials)
	}

	if s.registerPushToken(user, pushToken, platform) {
		if err := s.users.Save(user); err != nil {
			log.Printf("push token refresh failed for %s: %v", user.UID, err)
		}
	}

	return s.finishSession(ctx, user)
}

// GoogleSignIn exchanges a verified Google ID token for a session,
// creating the profile on first sign-in.
func (s *AuthService) GoogleSignIn(ctx context.Context, idToken, pushToken, platform string) (*SessionResult, error) {
	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrInvalidCredentials, err)
	}

	user, err := s.users.ByEmail(claims.Email)
	switch {
	case err == nil:
		if user.Provider != models.ProviderGoogle {
			return nil, utils.NewAppError(utils.ErrAccountExists)
		}
		if user.Disabled {
			return nil, utils.NewAppError(utils.ErrUserDisabled)
		}
		if s.registerPushToken(user, pushToken, platform) {
			if err := s.users.Save(user); err != nil {
				log.Printf("push token refresh failed for %s: %v", user.UID, err)
			}
		}
		return s.finishSession(ctx, user)

	case errors.Is(err, repository.ErrNotFound):
		// First federated sign-in creates the profile.
	default:
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}

	displayName := claims.Name
	if displayName == "" {
		displayName = "Anonymous User"
	}
	username, err := s.usernames.Generate(displayName)
	if err != nil {
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}

	user = &models.User{
		UID:                  uuid.NewString(),
		Email:                claims.Email,
		DisplayName:          displayName,
		Username:             username,
		PhotoURL:             claims.Picture,
		Provider:             models.ProviderGoogle,
		EmailVerified:        claims.Verified(),
		NotificationsEnabled: true,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.NewAppError(utils.ErrAccountExists)
		}
		return nil, utils.WrapAppError(utils.ErrUnavailable, err)
	}

	if s.registerPushToken(user, pushToken, platform) {
		if err := s.users.Save(user); err != nil {
			log.Printf("push token save failed for %s: %v", user.UID, err)
		}
	}

	return s.finishSession(ctx, user)
}

// SignOut revokes the server-side session snapshot. The client drops its
// token and local copy.
func (s *AuthService) SignOut(ctx context.Context, uid string) error {
	if err := s.sessions.Clear(ctx, uid); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	return nil
}

// Reauthenticate proves a fresh password check and returns a short-lived
// token required by the sensitive operations.
func (s *AuthService) Reauthenticate(uid, password string) (string, error) {
	user, err := s.users.ByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.NewAppError(utils.ErrUserNotFound)
		}
		return "", utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if user.Provider != models.ProviderEmail {
		return "", utils.NewAppError(utils.ErrOperationDenied)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", utils.NewAppError(utils.ErrWrongPassword)
	}
	token, err := utils.GenerateReauthJWT(uid)
	if err != nil {
		return "", utils.WrapAppError(utils.ErrUnknown, err)
	}
	return token, nil
}

// ReauthenticateGoogle is the federated counterpart: a fresh Google ID
// token for the account's own email stands in for the password check.
func (s *AuthService) ReauthenticateGoogle(ctx context.Context, uid, idToken string) (string, error) {
	user, err := s.users.ByUID(uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.NewAppError(utils.ErrUserNotFound)
		}
		return "", utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if user.Provider != models.ProviderGoogle {
		return "", utils.NewAppError(utils.ErrOperationDenied)
	}

	claims, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", utils.WrapAppError(utils.ErrInvalidCredentials, err)
	}
	if claims.Email != user.Email {
		return "", utils.NewAppError(utils.ErrInvalidCredentials)
	}

	token, err := utils.GenerateReauthJWT(uid)
	if err != nil {
		return "", utils.WrapAppError(utils.ErrUnknown, err)
	}
	return token, nil
}

func (s *AuthService) requireReauth(uid, reauthToken string) error {
	tokenUID, err := utils.ParseReauthJWT(reauthToken)
	if err != nil || tokenUID != uid {
		return utils.NewAppError(utils.ErrRecentLoginNeeded)
	}
	return nil
}

// ChangePassword requires a fresh reauthentication token.
func (s *AuthService) ChangePassword(uid, reauthToken, newPassword string) error {
	if err := s.requireReauth(uid, reauthToken); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return utils.NewAppError(utils.ErrWeakPassword)
	}

	user, err := s.users.ByUID(uid)
	if err != nil {
		return utils.NewAppError(utils.ErrUserNotFound)
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.WrapAppError(utils.ErrUnknown, err)
	}
	user.Password = hash
	if err := s.users.Save(user); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	return nil
}

// DeleteAccount removes everything the user owns. Subordinate records go
// first and the identity row last, so a partial failure leaves an account
// that can still sign in and retry.
func (s *AuthService) DeleteAccount(ctx context.Context, uid, reauthToken string) error {
	if err := s.requireReauth(uid, reauthToken); err != nil {
		return err
	}

	if _, err := s.users.ByUID(uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.NewAppError(utils.ErrUserNotFound)
		}
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}

	if err := s.streaks.DeleteAll(uid); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if err := s.devices.DeleteAll(uid); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if err := s.users.Delete(uid); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}

	if err := s.sessions.Clear(ctx, uid); err != nil {
		log.Printf("session clear after deletion failed for %s: %v", uid, err)
	}
	return nil
}

// RequestPasswordReset emails a reset code. The response never reveals
// whether the email exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if user.Provider != models.ProviderEmail {
		return nil
	}

	code := utils.GenerateRandomToken(6)
	if err := s.resets.Save(ctx, code, user.UID); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}
	if s.sendReset != nil {
		if err := s.sendReset(user.Email, code); err != nil {
			return utils.WrapAppError(utils.ErrUnavailable, err)
		}
	}
	return nil
}

// ConfirmPasswordReset consumes a reset code, sets the new password and
// revokes any live session.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	uid, err := s.resets.Get(ctx, code)
	if err != nil {
		return utils.NewAppError(utils.ErrExpiredCode)
	}
	if len(newPassword) < 6 {
		return utils.NewAppError(utils.ErrWeakPassword)
	}

	user, err := s.users.ByUID(uid)
	if err != nil {
		return utils.NewAppError(utils.ErrUserNotFound)
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.WrapAppError(utils.ErrUnknown, err)
	}
	user.Password = hash
	if err := s.users.Save(user); err != nil {
		return utils.WrapAppError(utils.ErrUnavailable, err)
	}

	_ = s.resets.Delete(ctx, code)
	_ = s.sessions.Clear(ctx, uid)
	return nil
}
