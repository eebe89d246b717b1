package cfgloader

// Option is a functional option for configuring MustLoad and LoadFile.
type Option func(*options)

type options struct {
	silent bool
	dir    string
}

func buildOptions(opts []Option) options {
	o := options{dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSilent disables printing the loaded config to stdout.
func WithSilent() Option {
	return func(o *options) {
		o.silent = true
	}
}

// WithDir changes the directory MustLoad looks for ${ENVIRONMENT}.yaml in.
// Default: ./config.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}
