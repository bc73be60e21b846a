// Package config loads and validates the YAML configuration: general
// switches, node-type styling, and the mode map. User files extend the
// compiled-in defaults rather than replacing them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"xplr/internal/errs"
	"xplr/internal/mode"
	"xplr/internal/node"
)

// Style is a renderable text style. Colors are terminal color names or hex
// strings, passed through to the UI layer untouched.
type Style struct {
	Fg           string   `yaml:"fg,omitempty"`
	Bg           string   `yaml:"bg,omitempty"`
	AddModifiers []string `yaml:"add_modifiers,omitempty"`
}

// NodeTypeConfig styles one class of node and carries free-form metadata for
// row rendering (e.g. an icon under meta.icon).
type NodeTypeConfig struct {
	Style Style             `yaml:"style,omitempty"`
	Meta  map[string]string `yaml:"meta,omitempty"`
}

func (n NodeTypeConfig) set() bool {
	return n.Style.Fg != "" || n.Style.Bg != "" ||
		len(n.Style.AddModifiers) > 0 || len(n.Meta) > 0
}

// NodeTypesConfig resolves a node to its style: special (exact name or glob
// pattern) wins over extension, extension over mime essence, mime essence
// over the directory/file/symlink base class.
type NodeTypesConfig struct {
	Directory   NodeTypeConfig            `yaml:"directory,omitempty"`
	File        NodeTypeConfig            `yaml:"file,omitempty"`
	Symlink     NodeTypeConfig            `yaml:"symlink,omitempty"`
	MimeEssence map[string]NodeTypeConfig `yaml:"mime_essence,omitempty"`
	Extension   map[string]NodeTypeConfig `yaml:"extension,omitempty"`
	Special     map[string]NodeTypeConfig `yaml:"special,omitempty"`
}

func (n NodeTypesConfig) extend(other NodeTypesConfig) NodeTypesConfig {
	out := n
	if other.Directory.set() {
		out.Directory = other.Directory
	}
	if other.File.set() {
		out.File = other.File
	}
	if other.Symlink.set() {
		out.Symlink = other.Symlink
	}
	out.MimeEssence = extendMap(n.MimeEssence, other.MimeEssence)
	out.Extension = extendMap(n.Extension, other.Extension)
	out.Special = extendMap(n.Special, other.Special)
	return out
}

func extendMap(base, other map[string]NodeTypeConfig) map[string]NodeTypeConfig {
	if len(other) == 0 {
		return base
	}
	out := make(map[string]NodeTypeConfig, len(base)+len(other))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// GeneralConfig holds the general switches. Pointer fields distinguish "not
// set" from an explicit zero so user files extend defaults instead of
// clobbering them.
type GeneralConfig struct {
	ShowHidden     *bool                    `yaml:"show_hidden,omitempty"`
	ReadOnly       *bool                    `yaml:"read_only,omitempty"`
	Prompt         *string                  `yaml:"prompt,omitempty"`
	InitialMode    *string                  `yaml:"initial_mode,omitempty"`
	InitialSorting *[]node.SorterApplicable `yaml:"initial_sorting,omitempty"`
}

func (g GeneralConfig) extend(other GeneralConfig) GeneralConfig {
	if other.ShowHidden != nil {
		g.ShowHidden = other.ShowHidden
	}
	if other.ReadOnly != nil {
		g.ReadOnly = other.ReadOnly
	}
	if other.Prompt != nil {
		g.Prompt = other.Prompt
	}
	if other.InitialMode != nil {
		g.InitialMode = other.InitialMode
	}
	if other.InitialSorting != nil {
		g.InitialSorting = other.InitialSorting
	}
	return g
}

// ModesConfig maps mode names to modes. Builtin entries are extended by user
// files; custom entries belong entirely to the user.
type ModesConfig struct {
	Builtin map[string]mode.Mode `yaml:"builtin,omitempty"`
	Custom  map[string]mode.Mode `yaml:"custom,omitempty"`
}

// Get resolves a mode by name. Custom modes shadow builtin ones; names match
// in both snake_case and space-separated spellings.
func (m ModesConfig) Get(name string) (mode.Mode, bool) {
	for _, candidate := range []string{
		name,
		strings.ReplaceAll(name, " ", "_"),
		strings.ReplaceAll(name, "_", " "),
	} {
		if md, ok := m.Custom[candidate]; ok {
			return md, true
		}
		if md, ok := m.Builtin[candidate]; ok {
			return md, true
		}
	}
	return mode.Mode{}, false
}

// Config is the whole configuration document.
type Config struct {
	Version   string          `yaml:"version"`
	General   GeneralConfig   `yaml:"general,omitempty"`
	NodeTypes NodeTypesConfig `yaml:"node_types,omitempty"`
	Modes     ModesConfig     `yaml:"modes,omitempty"`
}

// Extend overlays a user document onto the receiver. Builtin modes merge
// binding by binding; custom modes are taken as-is.
func (c Config) Extend(other Config) Config {
	out := c
	if other.Version != "" {
		out.Version = other.Version
	}
	out.General = c.General.extend(other.General)
	out.NodeTypes = c.NodeTypes.extend(other.NodeTypes)

	if len(other.Modes.Builtin) > 0 {
		out.Modes.Builtin = make(map[string]mode.Mode, len(c.Modes.Builtin))
		for name, md := range c.Modes.Builtin {
			out.Modes.Builtin[name] = md
		}
		for name, md := range other.Modes.Builtin {
			if base, ok := out.Modes.Builtin[name]; ok {
				out.Modes.Builtin[name] = base.Extend(md)
			} else {
				out.Modes.Builtin[name] = md
			}
		}
	}
	if len(other.Modes.Custom) > 0 {
		out.Modes.Custom = make(map[string]mode.Mode, len(c.Modes.Custom)+len(other.Modes.Custom))
		for name, md := range c.Modes.Custom {
			out.Modes.Custom[name] = md
		}
		for name, md := range other.Modes.Custom {
			out.Modes.Custom[name] = md
		}
	}
	return out
}

func (c *Config) ShowHidden() bool {
	return c.General.ShowHidden != nil && *c.General.ShowHidden
}

func (c *Config) ReadOnly() bool {
	return c.General.ReadOnly != nil && *c.General.ReadOnly
}

func (c *Config) Prompt() string {
	if c.General.Prompt == nil {
		return "> "
	}
	return *c.General.Prompt
}

func (c *Config) InitialMode() string {
	if c.General.InitialMode == nil {
		return "default"
	}
	return *c.General.InitialMode
}

func (c *Config) InitialSorting() []node.SorterApplicable {
	if c.General.InitialSorting == nil {
		return nil
	}
	out := make([]node.SorterApplicable, len(*c.General.InitialSorting))
	copy(out, *c.General.InitialSorting)
	return out
}

// InitialFilters derives the starting filter set: hidden entries are
// filtered out unless show_hidden is on.
func (c *Config) InitialFilters() []node.FilterApplicable {
	if c.ShowHidden() {
		return nil
	}
	return []node.FilterApplicable{HiddenFilter()}
}

// HiddenFilter is the filter that hides dotfiles.
func HiddenFilter() node.FilterApplicable {
	return node.FilterApplicable{Kind: node.RelativePathDoesNotStartWith, Input: "."}
}

// Sanitized strips every mode down to read-only actions when the config or
// the readOnly override asks for it.
func (c Config) Sanitized(readOnly bool) Config {
	if !c.ReadOnly() && !readOnly {
		return c
	}
	t := true
	c.General.ReadOnly = &t
	builtin := make(map[string]mode.Mode, len(c.Modes.Builtin))
	for name, md := range c.Modes.Builtin {
		builtin[name] = md.Sanitized()
	}
	custom := make(map[string]mode.Mode, len(c.Modes.Custom))
	for name, md := range c.Modes.Custom {
		custom[name] = md.Sanitized()
	}
	c.Modes.Builtin = builtin
	c.Modes.Custom = custom
	return c
}

// Load reads the user file at path, overlays it on the defaults, and gates
// on version compatibility against appVersion. An empty path or a missing
// file yields the defaults. The second result reports whether the user file
// comes from an older but compatible release.
func Load(path, appVersion string) (Config, bool, error) {
	cfg := Default(appVersion)
	if path == "" {
		return cfg, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return Config{}, false, errs.WithPath(errs.Config, err, "cannot open config", path)
	}
	defer f.Close()

	var user Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&user); err != nil {
		return Config{}, false, errs.WithPath(errs.Config, err, "cannot parse config", path)
	}

	upgrade, err := checkVersion(user.Version, appVersion)
	if err != nil {
		return Config{}, false, err
	}
	return cfg.Extend(user), upgrade, nil
}

// checkVersion enforces semver minor compatibility: the config's major and
// minor must equal the application's. It reports whether the config's patch
// level is older.
func checkVersion(configVersion, appVersion string) (bool, error) {
	if configVersion == "" {
		return false, errs.New(errs.Config, "config version is required")
	}
	cMaj, cMin, cPat, err := parseVersion(configVersion)
	if err != nil {
		return false, err
	}
	aMaj, aMin, aPat, err := parseVersion(appVersion)
	if err != nil {
		return false, err
	}
	if cMaj != aMaj || cMin != aMin {
		return false, errs.Newf(errs.Config,
			"incompatible config version %s, this is version %s", configVersion, appVersion)
	}
	return cPat < aPat, nil
}

func parseVersion(v string) (major, minor, patch int, err error) {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) != 3 {
		return 0, 0, 0, errs.Newf(errs.Config, "invalid version: %q", v)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, errs.Newf(errs.Config, "invalid version: %q", v)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// Encode renders the configuration back to canonical YAML.
func (c Config) Encode() (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return sb.String(), nil
}
