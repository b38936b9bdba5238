package colarr

import (
	"fmt"

	"github.com/hupe1980/colarr/coding"
)

// The factory dispatches construction through a static table keyed by
// (kind, style), built once at init. Adding a representation means adding a
// table entry, not touching the dispatch path.

type ctorKey struct {
	kind  Kind
	style Style
}

type ctorConfig struct {
	kind    Kind
	length  int
	def     any
	fillPct float64
	path    string
}

type ctorFunc func(cfg ctorConfig) (store, error)

var ctors map[ctorKey]ctorFunc

func init() {
	ctors = map[ctorKey]ctorFunc{
		{Bool, Dense}: func(cfg ctorConfig) (store, error) {
			return newBoolDense(cfg.length, coerceBool("create", Bool, cfg.def)), nil
		},
		{Bool, Mapped}: func(cfg ctorConfig) (store, error) {
			return newBoolMapped(cfg.length, coerceBool("create", Bool, cfg.def), cfg.path)
		},
		{Double, Dense}: func(cfg ctorConfig) (store, error) {
			return newFloat64Dense(cfg.length, coerceFloat64("create", Double, cfg.def)), nil
		},
		{Double, Sparse}: func(cfg ctorConfig) (store, error) {
			return newFloat64Sparse(cfg.length, coerceFloat64("create", Double, cfg.def), cfg.fillPct), nil
		},
		{Double, Mapped}: func(cfg ctorConfig) (store, error) {
			return newFloat64Mapped(cfg.length, coerceFloat64("create", Double, cfg.def), cfg.path)
		},
		{Object, Dense}: func(cfg ctorConfig) (store, error) {
			return newObjectDense(cfg.length, cfg.def), nil
		},
		{Object, Sparse}: func(cfg ctorConfig) (store, error) {
			return newObjectSparse(cfg.length, cfg.def, cfg.fillPct), nil
		},
	}

	// 4-byte kinds: raw ints plus every int-coded rich type.
	for _, k := range []Kind{Int, String, Zone, Currency, Year} {
		kind := k
		ic, _ := kindCoding(kind)
		ctors[ctorKey{kind, Dense}] = func(cfg ctorConfig) (store, error) {
			return newInt32Dense(kind, cfg.length, encode32("create", kind, ic, cfg.def), ic), nil
		}
		ctors[ctorKey{kind, Sparse}] = func(cfg ctorConfig) (store, error) {
			return newInt32Sparse(kind, cfg.length, encode32("create", kind, ic, cfg.def), cfg.fillPct, ic), nil
		}
	}

	// 8-byte kinds: raw longs plus every long-coded rich type.
	for _, k := range []Kind{Long, Time, Duration} {
		kind := k
		_, lc := kindCoding(kind)
		ctors[ctorKey{kind, Dense}] = func(cfg ctorConfig) (store, error) {
			return newInt64Dense(kind, cfg.length, encode64("create", kind, lc, cfg.def), lc), nil
		}
		ctors[ctorKey{kind, Sparse}] = func(cfg ctorConfig) (store, error) {
			return newInt64Sparse(kind, cfg.length, encode64("create", kind, lc, cfg.def), cfg.fillPct, lc), nil
		}
		ctors[ctorKey{kind, Mapped}] = func(cfg ctorConfig) (store, error) {
			return newInt64Mapped(kind, cfg.length, encode64("create", kind, lc, cfg.def), lc, cfg.path)
		}
	}

	// Mapped 4-byte kinds with codes stable across processes. String and
	// Zone codes are process-local intern indexes and have no mapped form:
	// persisting them would freeze meaningless codes into the file.
	for _, k := range []Kind{Int, Currency, Year} {
		kind := k
		ic, _ := kindCoding(kind)
		ctors[ctorKey{kind, Mapped}] = func(cfg ctorConfig) (store, error) {
			return newInt32Mapped(kind, cfg.length, encode32("create", kind, ic, cfg.def), ic, cfg.path)
		}
	}
}

// New creates a dense array of the given kind and length, filled with
// defaultValue. A nil default means missing for nullable kinds and is a
// type error for raw primitive kinds.
func New(kind Kind, length int, defaultValue any) (Array, error) {
	return construct(ctorConfig{kind: kind, length: length, def: defaultValue}, Dense)
}

// NewSparse creates a sparse array holding only entries that differ from
// defaultValue. fillPct in (0,1] sizes the backing map for the expected
// fraction of non-default entries. Bool arrays are always dense; a sparse
// request for them dispatches to dense storage.
func NewSparse(kind Kind, length int, defaultValue any, fillPct float64) (Array, error) {
	if fillPct <= 0 || fillPct > 1 {
		return nil, &ConfigError{Op: "create", Detail: fmt.Sprintf("fill percent %v", fillPct), cause: ErrInvalidFillPct}
	}
	style := Sparse
	if kind == Bool {
		// A two-valued domain makes sparse encoding pointless.
		style = Dense
	}
	return construct(ctorConfig{kind: kind, length: length, def: defaultValue, fillPct: fillPct}, style)
}

// NewMapped creates a file-backed array at the given path. The array owns
// the file handle and mapping; release them with Close. The file is left
// in place on Close so it can be reopened or shipped elsewhere.
func NewMapped(kind Kind, length int, defaultValue any, path string) (Array, error) {
	return construct(ctorConfig{kind: kind, length: length, def: defaultValue, path: path}, Mapped)
}

func construct(cfg ctorConfig, style Style) (Array, error) {
	if cfg.length < 0 {
		return nil, &ConfigError{Op: "create", Detail: fmt.Sprintf("negative length %d", cfg.length)}
	}
	ctor, ok := ctors[ctorKey{cfg.kind, style}]
	if !ok {
		return nil, &ConfigError{Op: "create", Detail: fmt.Sprintf("no %s constructor registered for %s arrays", style, cfg.kind)}
	}
	var s store
	err := catchTypeError(func() error {
		var cerr error
		s, cerr = ctor(cfg)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	logger().LogConstruct(cfg.kind, style, cfg.length)
	return wrap(s), nil
}

// NewCoded creates a dense array over a caller-supplied coding, reported as
// kind Enum. This is the open extension point for closed value sets:
//
//	c := coding.NewOrdinal(Clubs, Diamonds, Hearts, Spades)
//	arr, err := colarr.NewCoded(c, 52, nil)
func NewCoded(c coding.IntCoding, length int, defaultValue any) (Array, error) {
	return constructCoded(c, length, defaultValue, 0, "", Dense)
}

// NewCodedSparse is NewCoded with sparse storage.
func NewCodedSparse(c coding.IntCoding, length int, defaultValue any, fillPct float64) (Array, error) {
	if fillPct <= 0 || fillPct > 1 {
		return nil, &ConfigError{Op: "create", Detail: fmt.Sprintf("fill percent %v", fillPct), cause: ErrInvalidFillPct}
	}
	return constructCoded(c, length, defaultValue, fillPct, "", Sparse)
}

// NewCodedMapped is NewCoded with file-backed storage. The codes written to
// the file are only as stable as the supplied coding; orderings registered
// identically across processes (enum declarations) persist correctly.
func NewCodedMapped(c coding.IntCoding, length int, defaultValue any, path string) (Array, error) {
	return constructCoded(c, length, defaultValue, 0, path, Mapped)
}

func constructCoded(c coding.IntCoding, length int, def any, fillPct float64, path string, style Style) (Array, error) {
	if c == nil {
		return nil, &ConfigError{Op: "create", Detail: "nil coding"}
	}
	if length < 0 {
		return nil, &ConfigError{Op: "create", Detail: fmt.Sprintf("negative length %d", length)}
	}
	var s store
	err := catchTypeError(func() error {
		defCode := c.Code(def)
		switch style {
		case Dense:
			s = newInt32Dense(Enum, length, defCode, c)
		case Sparse:
			s = newInt32Sparse(Enum, length, defCode, fillPct, c)
		case Mapped:
			var cerr error
			s, cerr = newInt32Mapped(Enum, length, defCode, c, path)
			return cerr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger().LogConstruct(Enum, style, length)
	return wrap(s), nil
}

// NewEnum creates a dense ordinal-coded array over the declared value set.
// Enums always use coded storage: a small closed domain is ideal for 4-byte
// codes no matter the requested style.
func NewEnum[T comparable](length int, defaultValue any, values ...T) (Array, error) {
	return NewCoded(coding.NewOrdinal(values...), length, defaultValue)
}

// catchTypeError converts construction-time panics from default-value
// coercion or coding into configuration errors, so constructors keep the
// error-return contract.
func catchTypeError(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}
			err = &ConfigError{Op: "create", Detail: "invalid default value", cause: e}
		}
	}()
	return fn()
}
