package pkg

import "golang.org/x/crypto/bcrypt"

const hashCost = 12

// HashPassword is used for API tokens as well, only the hash is kept in the env.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	return BytesToString(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
