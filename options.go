package yamlite

import "fmt"

const (
	defaultTagName  = "yamlite"
	defaultMaxDepth = 1000
)

// Option configures parsing and encoding.
type Option func(*options) error

type options struct {
	startIndent int
	strict      bool
	tagName     string
	maxDepth    int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		tagName:  defaultTagName,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// StartIndent returns an Option that makes the encoder start at the given
// indentation level instead of the top level. Each level is two spaces.
//
// The level must not be negative.
func StartIndent(level int) Option {
	return func(o *options) error {
		if level < 0 {
			return fmt.Errorf("yamlite: start indent must not be negative")
		}
		o.startIndent = level
		return nil
	}
}

// Strict returns an Option that makes decoding fail with a *ParseError when
// the parser had to absorb or normalize any line. Parse itself never fails.
func Strict() Option {
	return func(o *options) error {
		o.strict = true
		return nil
	}
}

// TagName returns an Option that sets the struct tag consulted by Marshal and
// Unmarshal. The default is "yamlite".
func TagName(name string) Option {
	return func(o *options) error {
		if name == "" {
			return fmt.Errorf("yamlite: tag name must not be empty")
		}
		o.tagName = name
		return nil
	}
}

// MaxDepth returns an Option that limits how deeply the encoder recurses,
// guarding against cyclic values.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("yamlite: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}
