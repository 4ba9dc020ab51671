package countries

import (
	"net/http"
	"slices"

	"github.com/goliatone/go-jobform/pkg/application"
)

// GuardFunc may refuse a request; returning a StatusError picks the status.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath   string
	SearchParam string
	Guard       GuardFunc

	// Countries defaults to the form's country list.
	Countries []string
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/options/countries",
		SearchParam: "q",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/options/countries"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.Countries == nil {
		opts.Countries = application.Countries()
	} else {
		opts.Countries = slices.Clone(opts.Countries)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		o.SearchParam = name
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

func WithCountries(countries []string) OptionFn {
	return func(o *Options) {
		o.Countries = slices.Clone(countries)
	}
}
