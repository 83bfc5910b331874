package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ParolaOzetle düz metin parolayı bcrypt ile özetler.
func ParolaOzetle(parola string) (string, error) {
	if len(parola) == 0 {
		return "", errors.New("parola boş olamaz")
	}
	ozet, err := bcrypt.GenerateFromPassword([]byte(parola), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(ozet), nil
}

// ParolaDogrula düz metin parolayı saklanan özetle karşılaştırır.
func ParolaDogrula(ozet, parola string) error {
	if ozet == "" {
		return errors.New("parola özeti boş")
	}
	return bcrypt.CompareHashAndPassword([]byte(ozet), []byte(parola))
}
