// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 content digest.
type Digest [32]byte

// containerDomainKey separates AIF-BIN content digests from any other
// BLAKE3 use of the same bytes. It is the ASCII domain name
// zero-padded to 32 bytes; changing it changes every digest.
var containerDomainKey = [32]byte{
	'a', 'i', 'f', 'b', 'i', 'n', '.', 'c', 'o', 'n', 't', 'a', 'i', 'n', 'e', 'r',
}

// ShortRefPrefix starts every short reference.
const ShortRefPrefix = "aif-"

func newHasher() *blake3.Hasher {
	// NewKeyed only fails for keys that are not 32 bytes long.
	hasher, err := blake3.NewKeyed(containerDomainKey[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

// HashBytes returns the digest of data.
func HashBytes(data []byte) Digest {
	hasher := newHasher()
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashReader streams reader through the hash function.
func HashReader(reader io.Reader) (Digest, error) {
	hasher := newHasher()
	if _, err := io.Copy(hasher, reader); err != nil {
		return Digest{}, err
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// HashFile computes the digest of the file at path with constant
// memory use regardless of file size.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, err := HashReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// FormatDigest returns the lower-case hex encoding of digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string { return FormatDigest(d) }

// ParseDigest parses a 64-character hex digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}

// ShortRef returns "aif-" followed by the first 12 hex characters of
// digest, the form shown in library listings.
func ShortRef(digest Digest) string {
	return ShortRefPrefix + FormatDigest(digest)[:12]
}

// MatchesShortRef reports whether ref is a short reference (or a
// longer hex prefix, with or without "aif-") of digest.
func MatchesShortRef(digest Digest, ref string) bool {
	prefix := strings.ToLower(strings.TrimPrefix(ref, ShortRefPrefix))
	if len(prefix) < 4 {
		return false
	}
	return strings.HasPrefix(FormatDigest(digest), prefix)
}
