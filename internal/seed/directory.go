// Package seed holds the built-in identity directory and the mock catalogues
// every session starts from. Nothing handed out by a Directory aliases its
// internal state.
package seed

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lobus/superapp-ledger/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type identity struct {
	user models.SessionUser
	hash []byte
}

// Directory is the read-only set of seed identities and catalogues.
type Directory struct {
	identities []identity
	byHandle   map[string]int
}

// NewDirectory builds the directory from the built-in leaders. Credentials
// are kept only as bcrypt hashes.
func NewDirectory() (*Directory, error) {
	recs := leaders()
	d := &Directory{
		identities: make([]identity, 0, len(recs)),
		byHandle:   make(map[string]int, len(recs)),
	}
	for _, r := range recs {
		hash, err := bcrypt.GenerateFromPassword([]byte(r.password), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash credential for %s: %w", r.user.Handle, err)
		}
		d.byHandle[strings.ToLower(r.user.Handle)] = len(d.identities)
		d.identities = append(d.identities, identity{user: r.user.Clone(), hash: hash})
	}
	return d, nil
}

// NormalizeHandle trims the input and ensures a single leading "@".
func NormalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	if !strings.HasPrefix(h, "@") {
		h = "@" + h
	}
	return h
}

// Match looks up handle case-insensitively (with or without the leading "@")
// and compares the credential exactly. It returns a deep copy of the seed
// record on success.
func (d *Directory) Match(handle, credential string) (models.SessionUser, bool) {
	idx, ok := d.byHandle[strings.ToLower(NormalizeHandle(handle))]
	if !ok {
		return models.SessionUser{}, false
	}
	id := d.identities[idx]
	if bcrypt.CompareHashAndPassword(id.hash, []byte(credential)) != nil {
		return models.SessionUser{}, false
	}
	return id.user.Clone(), true
}

// Leaders returns the public profiles ordered by balance, richest first.
func (d *Directory) Leaders() []models.Profile {
	out := make([]models.Profile, 0, len(d.identities))
	for _, id := range d.identities {
		out = append(out, id.user.Profile())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance.GreaterThan(out[j].Balance)
	})
	return out
}

func (d *Directory) Routes() []models.TransportRoute {
	return routes()
}

func (d *Directory) Companies() []models.Quote {
	return companies()
}

func (d *Directory) CountryServices() []models.CountryService {
	return countryServices()
}

func (d *Directory) OpeningChat() []models.ChatMessage {
	return openingChat()
}
