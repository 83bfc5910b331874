// Package security uygulamanın güvenlik yardımcılarını sağlar.
//
// NotSanitizer, kişi/alarm gibi kayıtların serbest metin not ve
// açıklama alanlarındaki HTML'i izin listesi tabanlı bir politikayla
// temizler; script, iframe, style ve on* olay öznitelikleri atılır.
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer HTML temizleme arayüzüdür.
// Kayıt yazma yolunda, repository'ye inmeden önce kullanılır.
type Sanitizer interface {
	// Sanitize ham HTML'i temizleyip güvenli HTML döndürür.
	// Boş girdi boş çıktı verir; aynı girdi her zaman aynı çıktıyı verir.
	Sanitize(hamHTML string) string
}

// notSanitizer bluemonday politikası tutan Sanitizer implementasyonudur.
// Politika değişmez olduğundan eşzamanlı kullanım güvenlidir.
type notSanitizer struct {
	policy *bluemonday.Policy
}

// NewNotSanitizer not alanları için sanitizer oluşturur.
// İzinli etiketler: p, br, ul, ol, li, blockquote, strong, em, a.
// a etiketine rel="nofollow noopener" eklenir; göreli URL'ler reddedilir.
func NewNotSanitizer() Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "br", "ul", "ol", "li", "blockquote", "strong", "em")

	p.AllowAttrs("href").OnElements("a")
	p.AllowRelativeURLs(false)
	p.AllowURLSchemes("https", "http")
	p.RequireNoFollowOnLinks(true)

	return &notSanitizer{policy: p}
}

// Sanitize, Sanitizer arayüzünü uygular.
func (s *notSanitizer) Sanitize(hamHTML string) string {
	if hamHTML == "" {
		return ""
	}
	return s.policy.Sanitize(hamHTML)
}
