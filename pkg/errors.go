// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız — böylece karşılaştırma string yerine
// errors.Is() ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları döner (gerekirse fmt.Errorf("%w: detay") ile sarar),
// handler katmanı HTTP status code'larına map'ler.
//
// ErrBadRequest, kullanıcı girdisi hatalarını (boş body, geçersiz kategori,
// bozuk email) kapsar — hiçbir yazma işleminden ÖNCE yakalanır.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
