package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/teamfolio/teamfolio-go/internal/model"
	"github.com/teamfolio/teamfolio-go/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotProfileOwner  = errors.New("cannot edit another user's profile")
	ErrInvalidImageName = errors.New("invalid profile image file name")
)

// ProfileService reads and edits user profiles.
type ProfileService struct {
	repo           UserStore
	objects        ObjectStore
	enforceOwnerID bool
}

// NewProfileService creates a new ProfileService. With enforceOwnership set,
// Edit only lets callers change their own profile.
func NewProfileService(repo UserStore, objects ObjectStore, enforceOwnership bool) *ProfileService {
	return &ProfileService{
		repo:           repo,
		objects:        objects,
		enforceOwnerID: enforceOwnership,
	}
}

// GetByID returns the full stored user.
func (s *ProfileService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return user, nil
}

// List returns every user ordered by number.
func (s *ProfileService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Edit overwrites the target user's profile fields. When an image is
// attached it is uploaded first and its public URL is stored with the fields.
// A failed URL lookup after a successful upload leaves the object in place.
func (s *ProfileService) Edit(ctx context.Context, callerID int64, req model.ProfileEditRequest) (*model.User, error) {
	if s.enforceOwnerID && callerID != req.TargetID {
		return nil, ErrNotProfileOwner
	}

	if _, err := s.GetByID(ctx, req.TargetID); err != nil {
		return nil, err
	}

	upd := req.Update
	upd.ProfileImage = nil

	if req.Image != nil {
		key, err := imageKey(req.TargetID, req.Image.Filename)
		if err != nil {
			return nil, err
		}
		if err := s.objects.Upload(ctx, key, req.Image.Body, req.Image.ContentType); err != nil {
			return nil, err
		}
		url, err := s.objects.PublicURL(ctx, key)
		if err != nil {
			return nil, err
		}
		upd.ProfileImage = &url
	}

	if err := s.repo.UpdateProfile(ctx, req.TargetID, upd); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", req.TargetID, err)
	}

	return s.GetByID(ctx, req.TargetID)
}

// imageKey is the object key for a user's image: "<id>/<file name>".
func imageKey(userID int64, filename string) (string, error) {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", ErrInvalidImageName
	}
	return fmt.Sprintf("%d/%s", userID, name), nil
}
