package account

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/garage-coop/internal/domain/account"
	"github.com/BruksfildServices01/garage-coop/internal/httperr"
	"github.com/BruksfildServices01/garage-coop/internal/imaging"
	"github.com/BruksfildServices01/garage-coop/internal/models"
)

// UploadPhoto re-encodes the upload as a bounded webp avatar and stores it
// under a fresh key. A nil store means uploads are switched off.
type UploadPhoto struct {
	repo  domain.Repository
	store domain.PhotoStore
}

func NewUploadPhoto(repo domain.Repository, store domain.PhotoStore) *UploadPhoto {
	return &UploadPhoto{repo: repo, store: store}
}

func (uc *UploadPhoto) Execute(ctx context.Context, accountID uint, body io.Reader) (*models.Account, error) {

	if uc.store == nil {
		return nil, httperr.ErrUnavailable("photo_storage_disabled", "Photo uploads are not configured.")
	}

	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.Avatar(body)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return nil, httperr.ErrValidation("invalid_image", "Upload a JPEG, PNG, GIF or WebP image.")
		}
		return nil, err
	}

	key := fmt.Sprintf("accounts/%d/photo-%s.webp", acc.ID, uuid.NewString())
	if err := uc.store.Put(ctx, key, bytes.NewReader(encoded), int64(len(encoded)), imaging.ContentType); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePhotoKey(ctx, acc.ID, key); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, acc.ID)
}
