package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/atomicstack/vwm/internal/geometry"
	"github.com/atomicstack/vwm/internal/logging/events"
	"github.com/atomicstack/vwm/internal/wm"
)

// ApplyOptions supplies defaults for keys a window spec leaves unset.
type ApplyOptions struct {
	Animate bool
	Source  string
	// Existing resolves owner ids not declared in the document, such as
	// windows opened by an earlier Apply.
	Existing map[string]*wm.Window
}

// Result holds the windows opened by Apply.
type Result struct {
	Windows      []*wm.Window
	ByID         map[string]*wm.Window
	Dialogs      map[*wm.Window]*wm.Future[any]
	ConfirmClose map[*wm.Window]bool
}

// Apply opens every window of doc on m in document order. Windows that fail
// to open are skipped and reported together.
func Apply(m *wm.Manager, doc *Document, opts ApplyOptions) (*Result, error) {
	res := &Result{
		ByID:         make(map[string]*wm.Window),
		Dialogs:      make(map[*wm.Window]*wm.Future[any]),
		ConfirmClose: make(map[*wm.Window]bool),
	}
	var result *multierror.Error
	for i, spec := range doc.Windows {
		name := spec.label(i)
		w, err := spec.Window(opts)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			continue
		}
		var owner *wm.Window
		if spec.Owner != "" {
			owner = res.ByID[spec.Owner]
			if owner == nil {
				owner = opts.Existing[spec.Owner]
			}
			if owner == nil || !owner.IsShown() {
				result = multierror.Append(result, fmt.Errorf("%s: owner %q is not open", name, spec.Owner))
				continue
			}
		}
		switch {
		case spec.Dialog:
			var fut *wm.Future[any]
			if owner != nil {
				fut, err = wm.ShowDialog[any](w, owner)
			} else {
				fut, err = m.ShowDialog(w)
			}
			if err == nil {
				res.Dialogs[w] = fut
			}
		case owner != nil:
			err = m.ShowOwned(w, owner)
		default:
			err = m.ShowWindow(w)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", name, err))
			continue
		}
		res.Windows = append(res.Windows, w)
		if spec.ID != "" {
			res.ByID[spec.ID] = w
		}
		if spec.ConfirmClose {
			res.ConfirmClose[w] = true
		}
	}
	events.Layout.Loaded(opts.Source, len(res.Windows))
	return res, result.ErrorOrNil()
}

// Window builds the detached window described by s.
func (s WindowSpec) Window(opts ApplyOptions) (*wm.Window, error) {
	state, err := wm.ParseWindowState(s.State)
	if err != nil {
		return nil, err
	}
	startup, err := geometry.ParseStartupLocation(s.Startup)
	if err != nil {
		return nil, err
	}
	sizing, err := geometry.ParseSizeToContent(s.SizeToContent)
	if err != nil {
		return nil, err
	}
	closing, err := wm.ParseClosingBehavior(s.Closing)
	if err != nil {
		return nil, err
	}

	caps := wm.DefaultCapabilities()
	if s.Resizable != nil {
		caps.Resizable = *s.Resizable
	}
	if s.FullScreen != nil {
		caps.FullScreen = *s.FullScreen
	}
	animate := opts.Animate
	if s.Animate != nil {
		animate = *s.Animate
	}
	activate := true
	if s.Activate != nil {
		activate = *s.Activate
	}

	options := []wm.Option{
		wm.WithPosition(geometry.Point{X: s.X, Y: s.Y}),
		wm.WithSize(geometry.Size{Width: s.Width, Height: s.Height}),
		wm.WithMinSize(geometry.Size{Width: s.MinWidth, Height: s.MinHeight}),
		wm.WithMaxSize(geometry.Size{Width: s.MaxWidth, Height: s.MaxHeight}),
		wm.WithState(state),
		wm.WithStartupLocation(startup),
		wm.WithSizeToContent(sizing),
		wm.WithClosingBehavior(closing),
		wm.WithCapabilities(caps),
		wm.WithAnimate(animate),
		wm.WithShowActivated(activate),
	}
	if lines := s.BodyLines(); len(lines) > 0 {
		options = append(options, wm.WithContent(wm.TextContent{Lines: lines}))
	}
	return wm.NewWindow(s.Title, options...), nil
}

// SnapshotOptions customises Snapshot.
type SnapshotOptions struct {
	// ConfirmClose reports windows that ask before closing.
	ConfirmClose func(*wm.Window) bool
	// ID names a window; empty results and a nil func fall back to "w<id>".
	ID func(*wm.Window) string
}

func (o SnapshotOptions) id(w *wm.Window) string {
	if o.ID != nil {
		if id := o.ID(w); id != "" {
			return id
		}
	}
	return "w" + strconv.FormatUint(w.ID(), 10)
}

// Snapshot describes the windows currently attached to m. Owners precede the
// windows they own.
func Snapshot(m *wm.Manager, opts SnapshotOptions) *Document {
	doc := &Document{}
	var visit func(w *wm.Window)
	visit = func(w *wm.Window) {
		doc.Windows = append(doc.Windows, specFor(w, opts))
		for _, child := range w.Children() {
			visit(child)
		}
	}
	for _, w := range m.Windows() {
		if w.Owner() == nil {
			visit(w)
		}
	}
	return doc
}

func specFor(w *wm.Window, opts SnapshotOptions) WindowSpec {
	r := w.NormalBounds()
	b := w.SizeBounds()
	spec := WindowSpec{
		ID:        opts.id(w),
		Title:     w.Title(),
		X:         r.X,
		Y:         r.Y,
		Width:     r.Width,
		Height:    r.Height,
		MinWidth:  b.Min.Width,
		MinHeight: b.Min.Height,
		MaxWidth:  b.Max.Width,
		MaxHeight: b.Max.Height,
		Dialog:    w.IsDialog(),
	}
	if w.State() != wm.StateNormal {
		spec.State = w.State().String()
	}
	if w.ClosingBehavior() != wm.CloseOwnerOnly {
		spec.Closing = w.ClosingBehavior().String()
	}
	if w.SizeToContent() != geometry.SizeManual {
		spec.SizeToContent = w.SizeToContent().String()
	}
	if owner := w.Owner(); owner != nil {
		spec.Owner = opts.id(owner)
	}
	if caps := w.Capabilities(); !caps.Resizable {
		spec.Resizable = &caps.Resizable
	}
	if caps := w.Capabilities(); !caps.FullScreen {
		spec.FullScreen = &caps.FullScreen
	}
	if text, ok := w.Content().(wm.TextContent); ok {
		spec.Body = strings.Join(text.Lines, "\n")
	}
	if opts.ConfirmClose != nil && opts.ConfirmClose(w) {
		spec.ConfirmClose = true
	}
	return spec
}
