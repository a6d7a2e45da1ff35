// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"

	"accounts/config"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
)

const argon2idPrefix = "$argon2id$"

// Argon2Params holds the argon2id cost parameters shared by every hash the process produces.
type Argon2Params struct {
	Time       uint32
	MemoryKiB  uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// Validate rejects parameter sets argon2 cannot run with.
func (p Argon2Params) Validate() error {
	switch {
	case p.Time == 0:
		return errors.New("argon2 time must be positive")
	case p.Threads == 0:
		return errors.New("argon2 threads must be positive")
	case p.MemoryKiB < 8*uint32(p.Threads):
		return errors.Errorf("argon2 memory must be at least %d KiB", 8*uint32(p.Threads))
	case p.SaltLength < 8:
		return errors.New("argon2 salt length must be at least 8 bytes")
	case p.KeyLength < 16:
		return errors.New("argon2 key length must be at least 16 bytes")
	}

	return nil
}

// argon2Hasher is a concrete implementation of the PasswordHasher interface using argon2id.
type argon2Hasher struct {
	params Argon2Params // copied at construction, never mutated
	rand   io.Reader    // salt source
}

// NewArgon2Hasher builds the hasher from the hashing section of the configuration.
func NewArgon2Hasher(cfg *config.Config) (service.PasswordHasher, error) {
	if cfg.Hashing == nil {
		return nil, errors.New("hashing config must be provided")
	}

	return NewArgon2HasherWithParams(Argon2Params{
		Time:       cfg.Hashing.Time,
		MemoryKiB:  cfg.Hashing.MemoryKiB,
		Threads:    cfg.Hashing.Threads,
		SaltLength: cfg.Hashing.SaltLength,
		KeyLength:  cfg.Hashing.KeyLength,
	})
}

// NewArgon2HasherWithParams validates params and returns a hasher salting from crypto/rand.
func NewArgon2HasherWithParams(params Argon2Params) (service.PasswordHasher, error) {
	return newArgon2Hasher(params, rand.Reader)
}

func newArgon2Hasher(params Argon2Params, saltSource io.Reader) (*argon2Hasher, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid argon2 parameters")
	}

	return &argon2Hasher{params: params, rand: saltSource}, nil
}

// Hash derives an argon2id key from password with a fresh random salt and encodes it as a PHC string:
// $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
func (h *argon2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrInvalidRequest.WithDetails("password cannot be empty")
	}

	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WithDetails(fmt.Sprintf("generate salt: %v", err))
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Check compares a plaintext password with an encoded argon2id hash.
// The parameters are read back from the encoded string, so hashes made with older settings still verify.
func (h *argon2Hasher) Check(password, encoded string) bool {
	decoded, err := decodeArgon2Hash(encoded)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), decoded.salt, decoded.time, decoded.memory, decoded.threads, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(key, decoded.key) == 1
}

type decodedHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func decodeArgon2Hash(encoded string) (*decodedHash, error) {
	if !strings.HasPrefix(encoded, argon2idPrefix) {
		return nil, errors.New("unsupported hash algorithm")
	}

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return nil, errors.New("invalid hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, errors.Wrap(err, "parse version")
	}
	if version != argon2.Version {
		return nil, errors.Errorf("unsupported argon2 version %d", version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, errors.Wrap(err, "parse parameters")
	}
	if threads == 0 || threads > 255 || time == 0 {
		return nil, errors.New("invalid hash parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, errors.Wrap(err, "decode salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, errors.Wrap(err, "decode hash")
	}
	if len(key) == 0 || len(key) > 1<<10 {
		return nil, errors.New("invalid hash length")
	}

	return &decodedHash{
		memory:  memory,
		time:    time,
		threads: uint8(threads),
		salt:    salt,
		key:     key,
	}, nil
}
