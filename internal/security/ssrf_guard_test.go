package security

import "testing"

func TestValidateURLEngelliAdresler(t *testing.T) {
	g := NewSSRFGuard()

	engelli := []string{
		"",
		"ftp://ornek.com/webhook",
		"http://127.0.0.1/webhook",
		"http://10.0.0.5/webhook",
		"http://192.168.1.1/webhook",
		"http://169.254.169.254/latest/meta-data",
		"http://localhost/webhook",
		"http://[::1]/webhook",
	}
	for _, adres := range engelli {
		if err := g.ValidateURL(adres); err == nil {
			t.Errorf("ValidateURL(%q) hata döndürmeliydi", adres)
		}
	}
}

func TestValidateURLGecerliAdresler(t *testing.T) {
	g := NewSSRFGuard()

	gecerli := []string{
		"https://hooks.ornek.com/bplani",
		"http://ornek.com/webhook?alarm=1",
		"https://8.8.8.8/webhook",
	}
	for _, adres := range gecerli {
		if err := g.ValidateURL(adres); err != nil {
			t.Errorf("ValidateURL(%q) = %v, hata beklenmiyordu", adres, err)
		}
	}
}
