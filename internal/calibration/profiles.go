package calibration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/barknet/barknet-go/internal/errors"
)

// Profile is a named, persisted detector operating point.
type Profile struct {
	Name                 string  `json:"name"`
	Sensitivity          float64 `json:"sensitivity"`
	MinBarkDuration      float64 `json:"min_bark_duration"`
	SessionGapThreshold  float64 `json:"session_gap_threshold"`
	BackgroundNoiseLevel float64 `json:"background_noise_level"`
	CreatedDate          string  `json:"created_date"`
	Location             string  `json:"location"`
	Notes                string  `json:"notes"`
}

// ProfileStore persists profiles as one <name>.json per profile inside a
// directory.
type ProfileStore struct {
	dir string
}

// NewProfileStore creates a store rooted at dir, creating it if needed.
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(dir).
			Build()
	}
	return &ProfileStore{dir: dir}, nil
}

func (ps *ProfileStore) path(name string) string {
	return filepath.Join(ps.dir, name+".json")
}

// Save writes the profile, stamping CreatedDate if unset.
func (ps *ProfileStore) Save(profile *Profile) error {
	if profile.Name == "" {
		return errors.ValidationError("profile name must not be empty")
	}
	if profile.CreatedDate == "" {
		profile.CreatedDate = time.Now().Format("2006-01-02")
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errors.New(err).Category(errors.CategoryFileIO).Build()
	}

	if err := os.WriteFile(ps.path(profile.Name), data, 0o644); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(ps.path(profile.Name)).
			Build()
	}

	logger.Info("profile saved", "name", profile.Name, "sensitivity", profile.Sensitivity)
	return nil
}

// Load reads a profile by name. A missing profile is a distinct not-found
// condition; malformed content is a file-parsing error.
func (ps *ProfileStore) Load(name string) (*Profile, error) {
	data, err := os.ReadFile(ps.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("calibration profile %q not found", name)
		}
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(ps.path(name)).
			Build()
	}

	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileParsing).
			FileContext(ps.path(name)).
			Build()
	}
	return &profile, nil
}

// List returns the stored profile names, sorted.
func (ps *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(ps.dir)
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(ps.dir).
			Build()
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored profile. Deleting a missing profile is a
// not-found error.
func (ps *ProfileStore) Delete(name string) error {
	if err := os.Remove(ps.path(name)); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundError("calibration profile %q not found", name)
		}
		return errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(ps.path(name)).
			Build()
	}
	return nil
}
