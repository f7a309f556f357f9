package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	hcerrors "github.com/hostops/hostctl/internal/errors"
)

// StoreVersion is the current on-disk document version.
const StoreVersion = 1

//go:embed store_schema.json
var storeSchema string

// Profile is a stored (login, secret) pair usable to authenticate
// remote calls. Profiles are created and deleted whole, never mutated
// field by field.
type Profile struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}

// Store is the whole-document profile store. It is loaded fresh from
// disk at the start of each invocation and written back atomically by
// mutating commands; there is no in-memory persistence across runs.
//
// Separate hostctl processes racing on the same file are undefined
// behavior: each write replaces the whole document, so the last writer
// wins, but no locking is attempted.
type Store struct {
	Version       int
	ActiveProfile string // empty means none
	Profiles      map[string]Profile
}

// storeDoc is the JSON wire form; activeProfile serializes as null
// when no profile is active.
type storeDoc struct {
	Version       int                `json:"version"`
	ActiveProfile *string            `json:"activeProfile"`
	Profiles      map[string]Profile `json:"profiles"`
}

// NewStore returns an empty store at the current version.
func NewStore() *Store {
	return &Store{Version: StoreVersion, Profiles: map[string]Profile{}}
}

// Lookup returns the named profile.
func (s *Store) Lookup(name string) (Profile, bool) {
	p, ok := s.Profiles[name]
	return p, ok
}

// Names returns all profile names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add creates or replaces a profile. The first profile added to an
// empty store becomes the active one.
func (s *Store) Add(name string, p Profile) {
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	s.Profiles[name] = p
	if s.ActiveProfile == "" {
		s.ActiveProfile = name
	}
}

// Remove deletes a profile. Removing the active profile reassigns the
// active marker to the lexically-first remaining profile, or clears it
// when none remain, so the store invariant (active profile always
// exists) holds after every successful write.
func (s *Store) Remove(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return hcerrors.Configf("profile %q not found", name)
	}
	delete(s.Profiles, name)
	if s.ActiveProfile == name {
		s.ActiveProfile = ""
		if names := s.Names(); len(names) > 0 {
			s.ActiveProfile = names[0]
		}
	}
	return nil
}

// SetActive marks an existing profile as active.
func (s *Store) SetActive(name string) error {
	if _, ok := s.Profiles[name]; !ok {
		return hcerrors.Configf("profile %q not found", name)
	}
	s.ActiveProfile = name
	return nil
}

// Load reads the store document. A missing file is not an error: it
// yields an empty store. Malformed content, a document that fails the
// schema, or any other I/O failure is a ConfigError.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(), nil
		}
		return nil, &hcerrors.Error{
			Kind:       hcerrors.KindConfig,
			Message:    fmt.Sprintf("cannot read profile store %s", path),
			Details:    err.Error(),
			Suggestion: "Check file permissions",
			Err:        err,
		}
	}

	if err := validateDocument(data); err != nil {
		return nil, &hcerrors.Error{
			Kind:       hcerrors.KindConfig,
			Message:    fmt.Sprintf("profile store %s is malformed", path),
			Details:    err.Error(),
			Suggestion: "Fix or remove the file; hostctl starts fresh without it",
			Err:        err,
		}
	}

	var doc storeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &hcerrors.Error{
			Kind:    hcerrors.KindConfig,
			Message: fmt.Sprintf("profile store %s is not valid JSON", path),
			Details: err.Error(),
			Err:     err,
		}
	}

	store := &Store{Version: doc.Version, Profiles: doc.Profiles}
	if store.Profiles == nil {
		store.Profiles = map[string]Profile{}
	}
	if doc.ActiveProfile != nil {
		store.ActiveProfile = *doc.ActiveProfile
	}
	return store, nil
}

// Save writes the store atomically with owner-only permissions. The
// parent directory is created 0700 and the document is written to a
// 0600 temp file in the same directory, then renamed over the target,
// so no intermediate state is ever world-readable and a kill mid-write
// leaves the previous document intact.
func Save(path string, s *Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return &hcerrors.Error{
			Kind:    hcerrors.KindConfig,
			Message: fmt.Sprintf("cannot create config directory %s", dir),
			Details: err.Error(),
			Err:     err,
		}
	}

	doc := storeDoc{Version: s.Version, Profiles: s.Profiles}
	if doc.Profiles == nil {
		doc.Profiles = map[string]Profile{}
	}
	if s.ActiveProfile != "" {
		doc.ActiveProfile = &s.ActiveProfile
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return hcerrors.Wrap(err, hcerrors.KindConfig, "cannot encode profile store")
	}
	data = append(data, '\n')

	// os.CreateTemp creates the file 0600 from the first byte; no
	// chmod-after-write window.
	tmp, err := os.CreateTemp(dir, ".profiles-*.json")
	if err != nil {
		return hcerrors.Wrap(err, hcerrors.KindConfig, "cannot create temporary store file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return hcerrors.Wrap(err, hcerrors.KindConfig, "cannot write profile store")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return hcerrors.Wrap(err, hcerrors.KindConfig, "cannot write profile store")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return hcerrors.Wrap(err, hcerrors.KindConfig, "cannot replace profile store")
	}
	return nil
}

// validateDocument checks the raw document against the embedded schema.
func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(storeSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}
	return nil
}
