// Package token — anonim kimlik token'ı üretimi ve doğrulaması.
//
// Token bir credential DEĞİLDİR: server tarafında kayıt tutulmaz, expiry ve
// revocation yoktur. Tek işlevi korelasyondur — aynı tarayıcının ikinci
// tepkisini tanımak. Bu yüzden doğrulama sadece şekil kontrolüdür:
// client kendi ürettiği token'ı da kullanabilir.
package token

import (
	"regexp"

	"github.com/google/uuid"
)

// tokenShape, kabul edilen token formatı.
// 3-64 karakter, harf/rakam/nokta/tire/alt çizgi. Orijinal client'ın
// base36+timestamp üretimi de, bizim UUID üretimimiz de bu şekle uyar.
var tokenShape = regexp.MustCompile(`^[A-Za-z0-9._-]{3,64}$`)

// New, yeni bir anonim token üretir.
// UUID v4 = 122 bit rastgelelik — beklenen kullanıcı popülasyonunda
// çakışma ihtimali ihmal edilebilir.
func New() string {
	return uuid.NewString()
}

// Valid, token'ın kabul edilebilir şekilde olup olmadığını kontrol eder.
func Valid(t string) bool {
	return tokenShape.MatchString(t)
}
