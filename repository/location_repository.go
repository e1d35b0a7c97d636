package repository

import (
	"context"

	"github.com/Danchouvzv/nevsluh/models"
)

// LocationRepository, yer kaydı veritabanı işlemleri için interface.
// Location zayıf bir varlıktır — mesajlar opsiyonel referans verir,
// bunun ötesinde yaşam döngüsü yönetimi yoktur.
type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id string) (*models.Location, error)
}
