package model

// PasswordHasher one-way transforms a plaintext password into a digest
// safe to store. The transform is salted and irreversible; the digest is
// never equal to the input.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// TokenGenerator produces unguessable single-use activation tokens from a
// cryptographically strong random source.
type TokenGenerator interface {
	Generate() (string, error)
}
