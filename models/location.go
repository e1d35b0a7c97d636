package models

import (
	"fmt"
	"strings"
	"time"
)

// Location, bir mesajın işaret edebileceği yer kaydıdır.
// Mesajdan zayıf referansla (location_id) bağlanır — mesaj silinse de yaşar,
// location silinirse mesajdaki referans NULL'a düşer (ON DELETE SET NULL).
type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest, yeni yer kaydı isteği.
type CreateLocationRequest struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

// Validate, CreateLocationRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateLocationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("location name is required")
	}
	if len(r.Name) > 200 {
		return fmt.Errorf("location name must be at most 200 characters")
	}
	return nil
}
