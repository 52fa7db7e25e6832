// Package project loads reel.yaml, the project file describing the
// timeline a reel command plays or serves.
package project

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file name looked up when no path is given.
const DefaultFile = "reel.yaml"

// Project is the parsed reel.yaml.
type Project struct {
	Project  Meta     `yaml:"project"`
	Timeline Timeline `yaml:"timeline"`
	Engine   Engine   `yaml:"engine"`
}

// Meta carries project identity.
type Meta struct {
	Name string `yaml:"name,omitempty"`
}

// Timeline configures the playback clock.
type Timeline struct {
	// Duration is the timeline length in seconds.
	Duration float64 `yaml:"duration,omitempty"`

	// FPS is the frame rate used for frame stepping.
	FPS float64 `yaml:"fps,omitempty"`

	// Rate is the initial playback rate.
	Rate float64 `yaml:"rate,omitempty"`

	// Loop wraps playback at the end of the timeline.
	Loop bool `yaml:"loop,omitempty"`
}

// Engine gates the project on a minimum reel version.
type Engine struct {
	MinVersion string `yaml:"minVersion,omitempty"`
}

// Default returns the project used when no file exists: a one-minute
// timeline at 30 fps.
func Default() *Project {
	return &Project{
		Project:  Meta{Name: "untitled"},
		Timeline: Timeline{Duration: 60, FPS: 30, Rate: 1},
	}
}

// LoadOptional reads path from fs, falling back to Default when the file
// does not exist. Present-but-invalid files are errors.
func LoadOptional(fs afero.Fs, path string) (*Project, error) {
	if path == "" {
		path = DefaultFile
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Validate checks the numeric fields. Values the clock would merely
// clamp are accepted; only nonsensical files are rejected.
func (p *Project) Validate() error {
	if math.IsNaN(p.Timeline.Duration) || p.Timeline.Duration < 0 {
		return fmt.Errorf("timeline.duration must be >= 0, got %v", p.Timeline.Duration)
	}
	if math.IsNaN(p.Timeline.FPS) || p.Timeline.FPS <= 0 {
		return fmt.Errorf("timeline.fps must be > 0, got %v", p.Timeline.FPS)
	}
	if v := p.Engine.MinVersion; v != "" && !semver.IsValid(canonical(v)) {
		return fmt.Errorf("engine.minVersion %q is not a valid semver", v)
	}
	return nil
}

// CheckEngine verifies the running binary satisfies engine.minVersion.
func (p *Project) CheckEngine(binaryVersion string) error {
	min := p.Engine.MinVersion
	if min == "" {
		return nil
	}
	if semver.Compare(canonical(binaryVersion), canonical(min)) < 0 {
		return fmt.Errorf("project requires reel >= %s, running %s", min, binaryVersion)
	}
	return nil
}

// canonical normalizes a version string to the "vX.Y.Z" form semver
// expects.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
