// Package config loads, normalizes, and validates the project descriptor:
// the single YAML file that drives every generated build target.
package config

import (
	"gopkg.in/yaml.v3"
)

// DefaultConfigName is the descriptor filename looked up in the project
// root when no explicit path is given.
const DefaultConfigName = "crossforge.yml"

// Orientations is the closed set of screen orientations a descriptor may
// request, with a short description for each.
var Orientations = map[string]string{
	"portrait":          "portrait mode only, home at the bottom",
	"portrait-flipped":  "portrait mode only, home at the top",
	"portrait-either":   "portrait mode only, direction follows the device",
	"landscape":         "landscape mode only, home at the right",
	"landscape-flipped": "landscape mode only, home at the left",
	"landscape-either":  "landscape mode only, direction follows the device",
	"multidirectional":  "portrait or landscape, never flipped",
	"omnidirectional":   "every orientation the device supports",
}

// Platforms is the closed set of build targets a descriptor may request.
var Platforms = map[string]string{
	"android": "Android build via Android Studio",
	"apple":   "both macOS and iOS build via Xcode",
	"macos":   "macOS only build via Xcode",
	"ios":     "iOS only build via Xcode",
	"windows": "Windows build via Visual Studio",
	"cmake":   "desktop Linux build via CMake",
}

// StringList accepts either a single YAML scalar or a YAML sequence.
// Several descriptor fields (sources, includes, targets) allow both forms.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	var one string
	if err := node.Decode(&one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Suffix accepts either a boolean (derive an identifier and write it back)
// or a string (an identifier written back by a previous run).
type Suffix struct {
	Enabled bool
	Value   string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Suffix) UnmarshalYAML(node *yaml.Node) error {
	var flag bool
	if err := node.Decode(&flag); err == nil {
		s.Enabled = flag
		return nil
	}
	var value string
	if err := node.Decode(&value); err != nil {
		return err
	}
	s.Enabled = true
	s.Value = value
	return nil
}

// TargetSection holds the per-target extras of the descriptor.
type TargetSection struct {
	Sources  StringList `yaml:"sources"`
	Includes StringList `yaml:"includes"`
}

// Project is the parsed descriptor plus the attributes computed during
// Normalize. The zero value of every optional field is filled in by
// Normalize; Validate enforces the required ones.
type Project struct {
	Name        string     `yaml:"name"`
	Short       string     `yaml:"short"`
	Version     string     `yaml:"version"`
	AppID       string     `yaml:"appid"`
	Suffix      Suffix     `yaml:"suffix"`
	Orientation string     `yaml:"orientation"`
	Targets     StringList `yaml:"targets"`
	Assets      string     `yaml:"assets"`
	Sources     StringList `yaml:"sources"`
	Includes    StringList `yaml:"includes"`
	Build       string     `yaml:"build"`
	Toolkit     string     `yaml:"toolkit"`

	Android TargetSection `yaml:"android"`
	Apple   TargetSection `yaml:"apple"`
	MacOS   TargetSection `yaml:"macos"`
	IOS     TargetSection `yaml:"ios"`
	Windows TargetSection `yaml:"windows"`
	CMake   TargetSection `yaml:"cmake"`

	// Computed by Load and Normalize, never read from YAML.
	Path           string `yaml:"-"` // absolute path of the descriptor file
	Root           string `yaml:"-"` // absolute project root
	Camel          string `yaml:"-"` // capitalized camel case of Short
	BuildToRoot    string `yaml:"-"` // relative path from Build to Root
	BuildToToolkit string `yaml:"-"` // relative path from Build to Toolkit
}

// Section returns the per-target extras for the named platform. Unknown
// names return an empty section.
func (p *Project) Section(target string) TargetSection {
	switch target {
	case "android":
		return p.Android
	case "apple":
		return p.Apple
	case "macos":
		return p.MacOS
	case "ios":
		return p.IOS
	case "windows":
		return p.Windows
	case "cmake":
		return p.CMake
	}
	return TargetSection{}
}

// HasTarget reports whether the normalized target list contains name.
func (p *Project) HasTarget(name string) bool {
	for _, t := range p.Targets {
		if t == name {
			return true
		}
	}
	return false
}
