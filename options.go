package vmb

// Options configures a Codec. The wire layout itself is fixed by the VMB
// protocol (big-endian, fixed header, length derived from header flags),
// so Options only exposes the knobs the protocol genuinely leaves
// implementation-defined.
type Options struct {
	// MaxFrameSize caps the total frame size (header + timestamp +
	// address + payload) a Codec's Decode will accept. It can only lower, never
	// raise, the protocol ceiling of MaxMessageSize.
	MaxFrameSize int
	// Logger receives advisory diagnostics; see Logger.
	Logger Logger
}

var defaultOptions = Options{
	MaxFrameSize: MaxMessageSize,
	Logger:       discardLogger{},
}

// Option configures a Codec via NewCodec.
type Option func(*Options)

// WithMaxFrameSize lowers the frame size ceiling a Codec's Decode will accept
// below the protocol maximum, e.g. so an embedded device simulator with a
// small receive buffer fails fast instead of allocating up to 2064 bytes.
// Values <= 0 or above MaxMessageSize are clamped to MaxMessageSize.
func WithMaxFrameSize(n int) Option {
	return func(o *Options) {
		if n <= 0 || n > MaxMessageSize {
			n = MaxMessageSize
		}
		o.MaxFrameSize = n
	}
}

// WithLogger attaches an advisory Logger to a Codec.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger{}
		}
		o.Logger = l
	}
}
