package tenant

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/imaging"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
)

const logoMaxSide = 512

// UploadLogo converts an uploaded picture to WebP, stores it and points the
// barbershop logo at it.
type UploadLogo struct {
	repo     domain.Repository
	uploader storage.Uploader
	audit    *audit.Dispatcher
	clock    func() time.Time
}

func NewUploadLogo(repo domain.Repository, uploader storage.Uploader, audit *audit.Dispatcher) *UploadLogo {
	return &UploadLogo{
		repo:     repo,
		uploader: uploader,
		audit:    audit,
		clock:    time.Now,
	}
}

func (uc *UploadLogo) Execute(
	ctx context.Context,
	shop *models.Barbershop,
	userID string,
	file io.Reader,
	contentType string,
) (*models.Barbershop, error) {

	if uc.uploader == nil {
		return nil, httperr.ErrBusiness("uploads_disabled")
	}
	if !imaging.AllowedContentTypes[contentType] {
		return nil, httperr.ErrBusiness("invalid_file_type")
	}

	img, err := imaging.ToWebP(file, logoMaxSide)
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return nil, httperr.ErrBusiness("file_too_large")
	case errors.Is(err, imaging.ErrUnsupported):
		return nil, httperr.ErrBusiness("invalid_file_type")
	case err != nil:
		return nil, err
	}

	key := storage.LogoKey(shop.ID, strconv.FormatInt(uc.clock().Unix(), 10))
	url, err := uc.uploader.Upload(ctx, key, bytes.NewReader(img), imaging.ContentType)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, shop.ID, map[string]any{"logo_url": url})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       audit.Ptr(userID),
		Action:       "barbershop_logo_uploaded",
		Entity:       "barbershop",
		EntityID:     &updated.ID,
		Metadata:     map[string]string{"key": key},
	})

	return updated, nil
}
