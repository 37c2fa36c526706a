package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "$argon2id$"

// Argon2id parameters (OWASP minimum recommendation: 46 MiB, 1 pass, 1 lane).
const (
	argon2MemoryKiB   = 47104
	argon2Iterations  = 1
	argon2Parallelism = 1
	argon2SaltLen     = 16
	argon2KeyLen      = 32
)

var errMalformedDigest = errors.New("malformed argon2id digest")

// Argon2Hasher hashes with argon2id and encodes digests in PHC string
// format: $argon2id$v=19$m=47104,t=1,p=1$<salt>$<hash>.
type Argon2Hasher struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{
		memoryKiB:   argon2MemoryKiB,
		iterations:  argon2Iterations,
		parallelism: argon2Parallelism,
	}
}

func (h *Argon2Hasher) Hash(plaintext []byte) (string, error) {
	if len(plaintext) == 0 {
		return "", fmt.Errorf("%w: empty password", common.ErrInvalidInput)
	}

	salt := common.GenerateRandByteArray(argon2SaltLen)
	key := argon2.IDKey(plaintext, salt, h.iterations, h.memoryKiB, h.parallelism, argon2KeyLen)

	d := argon2Digest{
		memoryKiB:   h.memoryKiB,
		iterations:  h.iterations,
		parallelism: h.parallelism,
		salt:        salt,
		key:         key,
	}
	return d.String(), nil
}

// Verify recomputes the key with the parameters stored in digest, not the
// hasher's own, so digests created under older parameters still verify.
func (h *Argon2Hasher) Verify(plaintext []byte, digest string) bool {
	d, err := parseArgon2Digest(digest)
	if err != nil {
		return false
	}
	key := argon2.IDKey(plaintext, d.salt, d.iterations, d.memoryKiB, d.parallelism, uint32(len(d.key)))
	return subtle.ConstantTimeCompare(key, d.key) == 1
}

type argon2Digest struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func (d argon2Digest) String() string {
	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Prefix,
		argon2.Version,
		d.memoryKiB, d.iterations, d.parallelism,
		base64.RawStdEncoding.EncodeToString(d.salt),
		base64.RawStdEncoding.EncodeToString(d.key),
	)
}

func parseArgon2Digest(s string) (argon2Digest, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return argon2Digest{}, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2Digest{}, errMalformedDigest
	}

	var d argon2Digest
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &d.memoryKiB, &d.iterations, &d.parallelism); err != nil {
		return argon2Digest{}, errMalformedDigest
	}
	if d.memoryKiB == 0 || d.iterations == 0 || d.parallelism == 0 {
		return argon2Digest{}, errMalformedDigest
	}

	var err error
	if d.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(d.salt) == 0 {
		return argon2Digest{}, errMalformedDigest
	}
	if d.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(d.key) == 0 {
		return argon2Digest{}, errMalformedDigest
	}

	return d, nil
}
