// Package ident derives the deterministic identifiers that cross-reference
// objects inside generated project files. Xcode addresses objects by a
// 24-character uppercase hex token; Visual Studio uses the canonical
// hyphenated RFC 4122 form. Both are derived from a seed string with UUIDv5
// hashing, so regenerating a project yields the same identifiers and a
// minimal diff.
//
// All identifiers are guaranteed unique before a prefix overlay is applied.
// Applying a prefix forfeits that guarantee; re-checking is the caller's
// responsibility.
package ident

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Namespace selects the output format of a derived identifier.
type Namespace string

const (
	// Apple is the Xcode namespace: 24 uppercase hex characters.
	Apple Namespace = "apple24"

	// Windows is the Visual Studio namespace: uppercase 8-4-4-4-12
	// hyphenated hex per RFC 4122.
	Windows Namespace = "windows"
)

// appleSize is the length of an Xcode object identifier.
const appleSize = 24

// maxTries bounds collision rehashing before giving up.
const maxTries = 8

type cacheKey struct {
	ns   Namespace
	seed string
}

// Service produces deterministic, collision-checked identifiers. It is
// created fresh for each generation run and passed explicitly to every
// component that needs identifiers; there is no ambient instance. Not safe
// for concurrent use (runs are single-threaded by design).
type Service struct {
	uniques map[string]struct{}
	cache   map[cacheKey]string
}

// NewService creates an empty identifier service.
func NewService() *Service {
	return &Service{
		uniques: make(map[string]struct{}),
		cache:   make(map[cacheKey]string),
	}
}

// Get returns the identifier for the given namespace and seed. Results are
// cached per (namespace, seed), so repeated lookups within a run are
// idempotent. A derived identifier colliding with any previously returned
// one (across both namespaces) is rehashed with an attempt counter; after
// maxTries failures Get returns ErrExhaustedRetries.
func (s *Service) Get(ns Namespace, seed string) (string, error) {
	key := cacheKey{ns: ns, seed: seed}
	if id, ok := s.cache[key]; ok {
		return id, nil
	}

	for attempt := 0; attempt < maxTries; attempt++ {
		id, err := derive(ns, seed, attempt)
		if err != nil {
			return "", &DerivationError{Namespace: ns, Seed: seed, Wrapped: err}
		}
		if _, taken := s.uniques[id]; taken {
			continue
		}
		s.uniques[id] = struct{}{}
		s.cache[key] = id
		return id, nil
	}

	return "", &DerivationError{Namespace: ns, Seed: seed, Wrapped: ErrExhaustedRetries}
}

// derive hashes the seed into the namespace's format. Attempts past the
// first salt the seed so that rehashing can actually converge.
func derive(ns Namespace, seed string, attempt int) (string, error) {
	salted := seed
	if attempt > 0 {
		salted = fmt.Sprintf("%s#%d", seed, attempt)
	}
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(salted))

	switch ns {
	case Apple:
		hex := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
		return hex[:appleSize], nil
	case Windows:
		return strings.ToUpper(u.String()), nil
	default:
		return "", ErrUnknownNamespace
	}
}

// ApplyPrefix returns a copy of id with prefix overlaid position by
// position. Positions holding the hyphen separator keep the hyphen (the
// prefix character at that index is dropped, not shifted). A prefix longer
// than id is truncated; the result always has exactly the length of id.
//
// Applying a prefix forfeits the uniqueness guarantee of Get.
func ApplyPrefix(prefix, id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for i := 0; i < len(id); i++ {
		switch {
		case id[i] == '-':
			b.WriteByte('-')
		case i < len(prefix):
			b.WriteByte(prefix[i])
		default:
			b.WriteByte(id[i])
		}
	}
	return b.String()
}
