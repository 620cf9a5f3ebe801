package service

import (
	"context"
	"errors"
	"strings"

	"clipstream/internal/cache"
	"clipstream/internal/models"
	"clipstream/internal/observability"
	"clipstream/internal/repository"
	"clipstream/internal/storage"
	"clipstream/internal/token"
	"clipstream/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
	subRepo  repository.SubscriptionRepository
	tokens   *token.Service
	store    storage.ObjectStore
	logger   *observability.StructuredLogger
}

type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Avatar   *FileUpload
	Cover    *FileUpload
}

type LoginInput struct {
	Identifier string
	Password   string
}

// TokenPair carries a freshly issued access/refresh pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	tokens *token.Service,
	store storage.ObjectStore,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		subRepo:  subRepo,
		tokens:   tokens,
		store:    store,
		logger:   observability.NewStructuredLogger(),
	}
}

// Register validates the identity fields, hashes the password, uploads
// the optional profile images, and creates the user. Uploaded objects are
// deleted again if the row insert fails.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewBadRequestError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewBadRequestError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewBadRequestError(err.Error())
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, models.NewBadRequestError("Full name is required")
	}

	if _, err := s.userRepo.GetByUsername(ctx, in.Username); err == nil {
		return nil, models.NewConflictError("Username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, in.Email); err == nil {
		return nil, models.NewConflictError("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: strings.TrimSpace(in.FullName),
		Password: string(hash),
	}

	var uploaded []models.MediaRef
	if in.Avatar != nil {
		ref, err := s.store.Put(ctx, storage.ObjectKey("avatars", in.Avatar.Filename),
			in.Avatar.Reader, in.Avatar.Size, in.Avatar.ContentType)
		if err != nil {
			return nil, err
		}
		user.Avatar = ref
		uploaded = append(uploaded, ref)
	}
	if in.Cover != nil {
		ref, err := s.store.Put(ctx, storage.ObjectKey("covers", in.Cover.Filename),
			in.Cover.Reader, in.Cover.Size, in.Cover.ContentType)
		if err != nil {
			storage.CleanupUploads(ctx, s.store, uploaded...)
			return nil, err
		}
		user.CoverImage = ref
		uploaded = append(uploaded, ref)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		storage.CleanupUploads(ctx, s.store, uploaded...)
		// A concurrent registration can slip past the availability checks
		// above; the unique indexes still reject it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Username or email is already taken")
		}
		return nil, err
	}

	s.logger.LogServiceCall(ctx, "user", "register", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login verifies the credential and issues a token pair. Unknown user and
// wrong password produce the same generic Unauthorized.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, *TokenPair, error) {
	identifier := strings.TrimSpace(strings.ToLower(in.Identifier))
	if identifier == "" || in.Password == "" {
		return nil, nil, models.NewBadRequestError("Username or email and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = s.userRepo.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	access, refresh, err := s.tokens.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the user's refresh slot.
func (s *UserService) Logout(ctx context.Context, userID uint) error {
	return s.tokens.Revoke(ctx, userID)
}

// Refresh rotates the presented refresh token.
func (s *UserService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	access, refresh, err := s.tokens.Refresh(ctx, presented)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Me returns the current user.
func (s *UserService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user")
		}
		return nil, err
	}
	return user, nil
}

// UpdateAvatar uploads the new avatar, saves the user, then deletes the
// previous object.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uint, upload *FileUpload) (*models.User, error) {
	if upload == nil {
		return nil, models.NewBadRequestError("Avatar file is required")
	}

	user, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}

	newRef, err := s.store.Put(ctx, storage.ObjectKey("avatars", upload.Filename),
		upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		return nil, err
	}

	oldRef := user.Avatar
	user.Avatar = newRef
	if err := s.userRepo.Update(ctx, user); err != nil {
		storage.CleanupUploads(ctx, s.store, newRef)
		return nil, err
	}

	storage.CleanupUploads(ctx, s.store, oldRef)
	return user, nil
}

// ChannelProfile aggregates a channel's public fields with its
// subscription counts and the viewer's subscription state.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewerID uint) (*models.ChannelProfile, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, models.NewBadRequestError("Username is required")
	}

	var profile models.ChannelProfile
	key := cache.ChannelProfileKey(username, viewerID)
	err := cache.Aside(ctx, key, &profile, cache.ChannelProfileTTL, func() error {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}

		subscribers, err := s.subRepo.CountSubscribers(ctx, user.ID)
		if err != nil {
			return err
		}
		subscribedTo, err := s.subRepo.CountSubscribedTo(ctx, user.ID)
		if err != nil {
			return err
		}
		isSubscribed, err := s.subRepo.IsSubscribed(ctx, viewerID, user.ID)
		if err != nil {
			return err
		}

		profile = models.ChannelProfile{
			PublicUser:      user.Public(),
			CoverImage:      user.CoverImage,
			SubscriberCount: subscribers,
			SubscribedTo:    subscribedTo,
			IsSubscribed:    isSubscribed,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("channel")
		}
		return nil, err
	}
	return &profile, nil
}

// WatchHistory returns the viewer's watched videos in insertion order.
func (s *UserService) WatchHistory(ctx context.Context, userID uint, req models.PageRequest) (models.Page[models.VideoFeedItem], error) {
	req = req.Normalize()
	observability.RecordFeedRequest("watch_history")

	items, total, err := s.userRepo.WatchHistory(ctx, userID, req.Limit, req.Offset())
	if err != nil {
		return models.Page[models.VideoFeedItem]{}, err
	}
	return models.NewPage(items, total, req), nil
}
