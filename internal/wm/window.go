package wm

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/atomicstack/vwm/internal/geometry"
)

var windowIDs atomic.Uint64

// Window is one managed virtual window. Create it with NewWindow, attach it
// with Manager.ShowWindow, Window.Show or ShowDialog.
type Window struct {
	id      uint64
	title   string
	content Content

	state           WindowState
	caps            Capabilities
	showActivated   bool
	animate         bool
	closingBehavior ClosingBehavior
	sizeToContent   geometry.SizeToContent
	startup         geometry.StartupLocation
	bounds          geometry.Bounds

	geometry     geometry.Rect
	desired      geometry.Size
	normalRect   geometry.Rect
	minimizedPos *geometry.Point
	decorations  Decorations

	manager    *Manager
	owner      *Window
	modalChild *Window
	children   []childRef
	lifecycle  lifecycle
	zIndex     int
	active     bool

	activatedSeq uint64
	minimizedSeq uint64

	focus     Element
	result    any
	hasResult bool

	drag       *dragSession
	resize     *resizeSession
	kbMode     KeyboardMode
	anim       *animation
	afterClose []func()

	opened          observers[*Window]
	closed          observers[*Window]
	activated       observers[*Window]
	deactivated     observers[*Window]
	closing         observers[*ClosingEvent]
	positionChanged observers[PositionChangedEvent]
	resized         observers[ResizedEvent]
	stateChanged    observers[*Window]
}

type childRef struct {
	window   *Window
	isDialog bool
}

// Option configures a window at construction time.
type Option func(*Window)

// WithSize sets the explicit size. A zero dimension is resolved from content.
func WithSize(s geometry.Size) Option {
	return func(w *Window) { w.geometry = w.geometry.WithSize(s) }
}

// WithPosition sets the manual startup position.
func WithPosition(p geometry.Point) Option {
	return func(w *Window) { w.geometry = w.geometry.WithPosition(p) }
}

// WithState sets the state applied when the window is shown.
func WithState(s WindowState) Option {
	return func(w *Window) { w.state = s }
}

// WithCapabilities replaces the capability set.
func WithCapabilities(c Capabilities) Option {
	return func(w *Window) { w.caps = c }
}

// WithCanResize toggles the Resizable capability.
func WithCanResize(v bool) Option {
	return func(w *Window) { w.caps.Resizable = v }
}

// WithShowActivated controls whether Show activates the window.
func WithShowActivated(v bool) Option {
	return func(w *Window) { w.showActivated = v }
}

// WithAnimate enables transition animations for the window.
func WithAnimate(v bool) Option {
	return func(w *Window) { w.animate = v }
}

// WithClosingBehavior sets how close attempts treat descendants.
func WithClosingBehavior(b ClosingBehavior) Option {
	return func(w *Window) { w.closingBehavior = b }
}

// WithStartupLocation sets the placement policy used by Show.
func WithStartupLocation(l geometry.StartupLocation) Option {
	return func(w *Window) { w.startup = l }
}

// WithSizeToContent sets which dimensions follow measured content.
func WithSizeToContent(s geometry.SizeToContent) Option {
	return func(w *Window) { w.sizeToContent = s }
}

// WithMinSize sets the lower resize bound.
func WithMinSize(s geometry.Size) Option {
	return func(w *Window) { w.bounds.Min = s }
}

// WithMaxSize sets the upper resize bound. Zero dimensions are unbounded.
func WithMaxSize(s geometry.Size) Option {
	return func(w *Window) { w.bounds.Max = s }
}

// WithContent sets the measurable window body.
func WithContent(c Content) Option {
	return func(w *Window) { w.content = c }
}

// NewWindow creates a detached window in the Normal state.
func NewWindow(title string, opts ...Option) *Window {
	w := &Window{
		id:            windowIDs.Add(1),
		title:         title,
		caps:          DefaultCapabilities(),
		showActivated: true,
		startup:       geometry.StartupManual,
		decorations:   decorationsFor(StateNormal),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Window) String() string {
	return fmt.Sprintf("window#%d(%s)", w.id, w.title)
}

// ID is a process-unique identifier used in logs and by hosts.
func (w *Window) ID() uint64 { return w.id }

func (w *Window) Title() string { return w.title }

func (w *Window) SetTitle(title string) { w.title = title }

func (w *Window) Content() Content { return w.content }

func (w *Window) SetContent(c Content) { w.content = c }

func (w *Window) State() WindowState { return w.state }

func (w *Window) IsActive() bool { return w.active }

func (w *Window) Owner() *Window { return w.owner }

func (w *Window) ModalChild() *Window { return w.modalChild }

func (w *Window) ZIndex() int { return w.zIndex }

func (w *Window) Capabilities() Capabilities { return w.caps }

func (w *Window) CanResize() bool { return w.caps.Resizable }

func (w *Window) SetCanResize(v bool) { w.caps.Resizable = v }

func (w *Window) Animate() bool { return w.animate }

func (w *Window) SetAnimate(v bool) { w.animate = v }

func (w *Window) ShowActivated() bool { return w.showActivated }

func (w *Window) SetShowActivated(v bool) { w.showActivated = v }

func (w *Window) ClosingBehavior() ClosingBehavior { return w.closingBehavior }

func (w *Window) SetClosingBehavior(b ClosingBehavior) { w.closingBehavior = b }

func (w *Window) StartupLocation() geometry.StartupLocation { return w.startup }

func (w *Window) SetStartupLocation(l geometry.StartupLocation) { w.startup = l }

func (w *Window) SizeToContent() geometry.SizeToContent { return w.sizeToContent }

func (w *Window) SetSizeToContent(s geometry.SizeToContent) { w.sizeToContent = s }

func (w *Window) SizeBounds() geometry.Bounds { return w.bounds }

// Decorations reports the chrome the host should draw for the current state.
func (w *Window) Decorations() Decorations { return w.decorations }

// Manager returns the manager the window is attached to, or nil.
func (w *Window) Manager() *Manager { return w.manager }

// IsShown reports whether the window is attached and not closing.
func (w *Window) IsShown() bool { return w.lifecycle == lifecycleShown }

// IsClosed reports whether the window finished closing.
func (w *Window) IsClosed() bool { return w.lifecycle == lifecycleClosed }

// Bounds is the rectangle currently occupied on the surface, including
// any in-flight animation frame.
func (w *Window) Bounds() geometry.Rect { return w.geometry }

func (w *Window) Position() geometry.Point { return w.geometry.Position() }

func (w *Window) Size() geometry.Size { return w.geometry.Size() }

// NormalBounds is the rectangle restored when returning to Normal.
func (w *Window) NormalBounds() geometry.Rect {
	if w.state == StateNormal && w.lifecycle == lifecycleShown {
		return w.settledGeometry()
	}
	return w.normalRect
}

// DesiredSize is the last measured content size including chrome.
func (w *Window) DesiredSize() geometry.Size { return w.desired }

// Children returns the owned windows in the order they were attached.
func (w *Window) Children() []*Window {
	out := make([]*Window, 0, len(w.children))
	for _, c := range w.children {
		out = append(out, c.window)
	}
	return out
}

// IsDialog reports whether the window was shown modally for its owner.
func (w *Window) IsDialog() bool {
	if w.owner == nil {
		return w.manager != nil && w.manager.modal == w
	}
	for _, c := range w.owner.children {
		if c.window == w {
			return c.isDialog
		}
	}
	return false
}

// DialogResult returns the value passed to CloseWithResult.
func (w *Window) DialogResult() (any, bool) { return w.result, w.hasResult }

// ClientBounds is the area inside the current chrome.
func (w *Window) ClientBounds() geometry.Rect {
	inset := w.chromeInsets()
	r := w.geometry
	r.X += inset.left
	r.Y += inset.top
	r.Width = max(0, r.Width-inset.left-inset.right)
	r.Height = max(0, r.Height-inset.top-inset.bottom)
	return r
}

// TitleBarBounds is the title bar strip, or an empty rect when hidden.
func (w *Window) TitleBarBounds() geometry.Rect {
	if !w.decorations.TitleBar {
		return geometry.Rect{}
	}
	border, title := w.chromeMetrics()
	r := w.geometry
	if w.decorations.Border {
		r.X += border
		r.Y += border
		r.Width = max(0, r.Width-2*border)
	}
	r.Height = min(title, r.Height)
	return r
}

type insets struct{ left, top, right, bottom int }

func (w *Window) chromeMetrics() (border, title int) {
	if w.manager != nil {
		return w.manager.cfg.BorderThickness, w.manager.cfg.TitleBarHeight
	}
	return defaultBorderThickness, defaultTitleBarHeight
}

func (w *Window) chromeInsets() insets {
	border, title := w.chromeMetrics()
	var in insets
	if w.decorations.Border {
		in = insets{left: border, top: border, right: border, bottom: border}
	}
	if w.decorations.TitleBar {
		in.top += title
	}
	return in
}

// SetPosition moves the window. Outside Normal it updates the position that
// will be restored.
func (w *Window) SetPosition(p geometry.Point) {
	if w.lifecycle != lifecycleShown {
		w.geometry = w.geometry.WithPosition(p)
		return
	}
	if w.state != StateNormal {
		w.normalRect = w.normalRect.WithPosition(p)
		return
	}
	w.settleAnimation()
	w.commitGeometry(w.geometry.WithPosition(p), ResizeUnspecified)
}

// SetSize resizes the window within its size bounds. Outside Normal it
// updates the size that will be restored.
func (w *Window) SetSize(s geometry.Size) {
	s = w.bounds.Clamp(s)
	if w.lifecycle != lifecycleShown {
		w.geometry = w.geometry.WithSize(s)
		return
	}
	if w.state != StateNormal {
		w.normalRect = w.normalRect.WithSize(s)
		return
	}
	w.settleAnimation()
	w.commitGeometry(w.geometry.WithSize(s), ResizeUnspecified)
}

// SetMinSize changes the lower bound and re-clamps a Normal window.
func (w *Window) SetMinSize(s geometry.Size) {
	w.bounds.Min = s
	w.reclamp()
}

// SetMaxSize changes the upper bound and re-clamps a Normal window.
func (w *Window) SetMaxSize(s geometry.Size) {
	w.bounds.Max = s
	w.reclamp()
}

func (w *Window) reclamp() {
	if w.lifecycle != lifecycleShown || w.state != StateNormal {
		return
	}
	size := w.bounds.Clamp(w.geometry.Size())
	if size != w.geometry.Size() {
		w.commitGeometry(w.geometry.WithSize(size), ResizeLayout)
	}
}

// commitGeometryFrom assigns next and emits PositionChanged/Resized for the
// dimensions that differ from prev.
func (w *Window) commitGeometryFrom(prev, next geometry.Rect, reason ResizeReason) {
	w.geometry = next
	if w.lifecycle != lifecycleShown {
		return
	}
	if prev.Position() != next.Position() {
		w.emitPositionChanged(next.Position())
	}
	if prev.Size() != next.Size() {
		w.emitResized(next.Size(), reason)
	}
}

func (w *Window) commitGeometry(next geometry.Rect, reason ResizeReason) {
	w.commitGeometryFrom(w.geometry, next, reason)
}

func (w *Window) settledGeometry() geometry.Rect {
	if w.anim != nil {
		return w.anim.to
	}
	return w.geometry
}

func (w *Window) addChild(child *Window, isDialog bool) {
	for _, c := range w.children {
		if c.window == child {
			return
		}
	}
	w.children = append(w.children, childRef{window: child, isDialog: isDialog})
}

func (w *Window) removeChild(child *Window) {
	w.children = slices.DeleteFunc(w.children, func(c childRef) bool {
		return c.window == child
	})
}

// ownerChain returns the ancestors of w, oldest first.
func (w *Window) ownerChain() []*Window {
	var chain []*Window
	for o := w.owner; o != nil; o = o.owner {
		chain = append(chain, o)
	}
	slices.Reverse(chain)
	return chain
}

func (w *Window) isDescendantOf(ancestor *Window) bool {
	for o := w.owner; o != nil; o = o.owner {
		if o == ancestor {
			return true
		}
	}
	return false
}

// deepestModal follows the modal child chain to the dialog that currently
// accepts input.
func (w *Window) deepestModal() *Window {
	cur := w
	for cur.modalChild != nil {
		cur = cur.modalChild
	}
	return cur
}
