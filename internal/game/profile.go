package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"monstercollector/internal/monster"
)

var (
	ErrProfileExists   = errors.New("a profile with that name already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrBadProfileName  = errors.New("invalid profile name")
)

const profileExt = ".json"

// Profile is the on-disk document: a name and the saved player state.
type Profile struct {
	Name string      `json:"name"`
	Data ProfileData `json:"data"`
}

// ProfileData captures the persistent player state. Battle HP is never saved.
type ProfileData struct {
	X                int            `json:"x"`
	Y                int            `json:"y"`
	Money            int            `json:"money"`
	Bag              map[string]int `json:"bag"`
	Party            []MonsterSave  `json:"party"`
	DefeatedTrainers []int          `json:"defeated_trainers,omitempty"`
	SavedAt          string         `json:"saved_at,omitempty"`
}

// MonsterSave is one party member by species key.
type MonsterSave struct {
	Species string         `json:"species"`
	Level   int            `json:"level"`
	Exp     int            `json:"exp"`
	Moves   []monster.Move `json:"moves,omitempty"`
}

// ProfileStore keeps one JSON document per profile in a directory.
type ProfileStore struct {
	dir string
}

func NewProfileStore(dir string) *ProfileStore {
	return &ProfileStore{dir: dir}
}

func (s *ProfileStore) Dir() string {
	return s.dir
}

// Profile names double as file names and SSH usernames.
var profileNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,16}$`)

func validProfileName(name string) error {
	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadProfileName, name)
	}
	return nil
}

func (s *ProfileStore) path(name string) (string, error) {
	if err := validProfileName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+profileExt), nil
}

// List returns the saved profile names in sorted order
func (s *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), profileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), profileExt))
	}
	sort.Strings(names)
	return names, nil
}

func (s *ProfileStore) Exists(name string) bool {
	path, err := s.path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Create writes a new profile and fails if the name is taken
func (s *ProfileStore) Create(p *Profile) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrProfileExists, p.Name)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	defer f.Close()
	return encodeProfile(f, p)
}

// Save overwrites the profile document
func (s *ProfileStore) Save(p *Profile) error {
	path, err := s.path(p.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create saves directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	defer f.Close()
	return encodeProfile(f, p)
}

// Load reads a profile by name
func (s *ProfileStore) Load(name string) (*Profile, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()
	var p Profile
	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

func encodeProfile(f *os.File, p *Profile) error {
	p.Data.SavedAt = time.Now().Format(time.RFC3339)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return nil
}
