package service

import (
	"context"
	"io"

	"github.com/teamfolio/teamfolio-go/internal/model"
)

// UserStore is the credential store consumed by the auth and profile services.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, upd model.ProfileUpdate) error
}

// DocumentStore persists documents.
type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	ListByUser(ctx context.Context, userID int64) ([]model.Document, error)
}

// ObjectStore holds uploaded profile images.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(ctx context.Context, key string) (string, error)
}
