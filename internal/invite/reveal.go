package invite

// State is the main reveal state of a session. It only moves forward.
type State int

const (
	StateClosed State = iota
	StateRevealing
	StateRevealed
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateRevealing:
		return "revealing"
	case StateRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// BurstParams describes one particle burst.
type BurstParams struct {
	ParticleCount int
	Spread        float64
	OriginY       float64
	Colors        []string
}

// DefaultBurst returns the parameters used for every reveal.
func DefaultBurst() BurstParams {
	return BurstParams{
		ParticleCount: 100,
		Spread:        70,
		OriginY:       0.6,
		Colors:        []string{"#ffb7b2", "#ff9aa2", "#ffffff"},
	}
}

// Effects is the rendering layer the session dispatches into. All calls are
// fire-and-forget; completions come back through AnimationSettled and
// OverlaySettled.
type Effects interface {
	PlayParticleBurst(BurstParams)
	ShowOverlay(glyph string)
	HideOverlay()
	RunRevealSequence()
}

// Session owns the reveal life cycle of a single invitation view: one tap
// opens the envelope, the animation layer reports back when the card motion
// and the overlay timeline finish. A session has exactly one mutator and is
// not safe for concurrent use. It cannot be reset; a new page view gets a
// new session.
type Session struct {
	content        Renderable
	fx             Effects
	state          State
	overlayVisible bool
}

func NewSession(content Renderable, fx Effects) *Session {
	return &Session{content: content, fx: fx}
}

func (s *Session) State() State { return s.state }

func (s *Session) OverlayVisible() bool { return s.overlayVisible }

// Open starts the reveal. Repeated taps are ignored once the envelope is no
// longer closed, so effects dispatch at most once per session.
func (s *Session) Open() {
	if s.state != StateClosed {
		return
	}
	s.state = StateRevealing

	if s.content.ConfettiEnabled {
		s.fx.PlayParticleBurst(DefaultBurst())
	}
	if s.content.EmojiOverlayEnabled {
		s.overlayVisible = true
		s.fx.ShowOverlay(s.content.Emoji)
	}

	s.fx.RunRevealSequence()
}

// AnimationSettled records completion of the card motion. Delivered by the
// animation layer exactly once per reveal; ignored in any other state.
func (s *Session) AnimationSettled() {
	if s.state == StateRevealing {
		s.state = StateRevealed
	}
}

// OverlaySettled clears the overlay once its enter/float/fade timeline ends.
// This is the only path that hides the overlay.
func (s *Session) OverlaySettled() {
	if !s.overlayVisible {
		return
	}
	s.overlayVisible = false
	s.fx.HideOverlay()
}
