package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and verifies credentials. Implementations must be
// one-way and salted.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// BcryptHasher is a PasswordHasher backed by bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher. Costs outside bcrypt's accepted
// range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
