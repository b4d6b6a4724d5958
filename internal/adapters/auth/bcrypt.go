package auth

import "golang.org/x/crypto/bcrypt"

type Hasher struct{ cost int }

func NewHasher() *Hasher { return &Hasher{cost: bcrypt.DefaultCost} }

func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Verify(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
