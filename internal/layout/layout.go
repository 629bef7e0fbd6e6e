// Package layout reads and writes YAML documents describing the windows to
// open on a surface.
package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/wm"
)

// Document is a layout file.
type Document struct {
	Windows []WindowSpec `yaml:"windows"`
}

// WindowSpec describes one window. Owners must be declared before the
// windows they own.
type WindowSpec struct {
	ID            string `yaml:"id,omitempty"`
	Title         string `yaml:"title"`
	X             int    `yaml:"x,omitempty"`
	Y             int    `yaml:"y,omitempty"`
	Width         int    `yaml:"width,omitempty"`
	Height        int    `yaml:"height,omitempty"`
	MinWidth      int    `yaml:"minWidth,omitempty"`
	MinHeight     int    `yaml:"minHeight,omitempty"`
	MaxWidth      int    `yaml:"maxWidth,omitempty"`
	MaxHeight     int    `yaml:"maxHeight,omitempty"`
	State         string `yaml:"state,omitempty"`
	Startup       string `yaml:"startup,omitempty"`
	SizeToContent string `yaml:"sizeToContent,omitempty"`
	Closing       string `yaml:"closing,omitempty"`
	Owner         string `yaml:"owner,omitempty"`
	Dialog        bool   `yaml:"dialog,omitempty"`
	ConfirmClose  bool   `yaml:"confirmClose,omitempty"`
	Resizable     *bool  `yaml:"resizable,omitempty"`
	FullScreen    *bool  `yaml:"fullScreen,omitempty"`
	Animate       *bool  `yaml:"animate,omitempty"`
	Activate      *bool  `yaml:"activate,omitempty"`
	Body          string `yaml:"body,omitempty"`
}

// Parse decodes a layout document. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("unable to parse layout: %w", err)
	}
	return &doc, nil
}

// Load reads and validates the layout file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read layout %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Save writes the document to path.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("unable to encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("unable to write layout %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem in the document at once.
func (d *Document) Validate() error {
	var result *multierror.Error
	seen := make(map[string]bool, len(d.Windows))
	dialogOwners := make(map[string]bool)
	for i, spec := range d.Windows {
		name := spec.label(i)
		for _, err := range spec.validate() {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
		}
		if spec.Owner != "" {
			switch {
			case spec.Owner == spec.ID:
				result = multierror.Append(result, fmt.Errorf("%s: window cannot own itself", name))
			case !seen[spec.Owner]:
				result = multierror.Append(result, fmt.Errorf("%s: owner %q must be declared earlier", name, spec.Owner))
			}
		}
		if spec.Dialog {
			if dialogOwners[spec.Owner] {
				owner := spec.Owner
				if owner == "" {
					owner = "surface"
				}
				result = multierror.Append(result, fmt.Errorf("%s: %s already has a dialog: %w", name, owner, wm.ErrAlreadyShowingModal))
			}
			dialogOwners[spec.Owner] = true
		}
		if spec.ID != "" {
			if seen[spec.ID] {
				result = multierror.Append(result, fmt.Errorf("%s: duplicate id %q", name, spec.ID))
			}
			seen[spec.ID] = true
		}
	}
	return result.ErrorOrNil()
}

func (s WindowSpec) label(i int) string {
	if s.ID != "" {
		return fmt.Sprintf("window %q", s.ID)
	}
	return fmt.Sprintf("window #%d", i+1)
}

func (s WindowSpec) validate() []error {
	var errs []error
	if _, err := wm.ParseWindowState(s.State); err != nil {
		errs = append(errs, err)
	}
	if _, err := geometry.ParseStartupLocation(s.Startup); err != nil {
		errs = append(errs, err)
	}
	if _, err := geometry.ParseSizeToContent(s.SizeToContent); err != nil {
		errs = append(errs, err)
	}
	if _, err := wm.ParseClosingBehavior(s.Closing); err != nil {
		errs = append(errs, err)
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"width", s.Width}, {"height", s.Height},
		{"minWidth", s.MinWidth}, {"minHeight", s.MinHeight},
		{"maxWidth", s.MaxWidth}, {"maxHeight", s.MaxHeight},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative (got %d)", f.name, f.value))
		}
	}
	if s.MaxWidth > 0 && s.MinWidth > s.MaxWidth {
		errs = append(errs, fmt.Errorf("minWidth %d exceeds maxWidth %d", s.MinWidth, s.MaxWidth))
	}
	if s.MaxHeight > 0 && s.MinHeight > s.MaxHeight {
		errs = append(errs, fmt.Errorf("minHeight %d exceeds maxHeight %d", s.MinHeight, s.MaxHeight))
	}
	if s.State == wm.StateFullScreen.String() && s.FullScreen != nil && !*s.FullScreen {
		errs = append(errs, fmt.Errorf("fullscreen state requires fullScreen support: %w", wm.ErrUnsupportedOperation))
	}
	return errs
}

// BodyLines splits the body into display lines.
func (s WindowSpec) BodyLines() []string {
	body := strings.TrimRight(s.Body, "\n")
	if body == "" {
		return nil
	}
	return strings.Split(body, "\n")
}
