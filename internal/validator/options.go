package validator

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Option is a single command line option. A nil Values means a flag-only option.
type Option struct {
	Name   string
	Values []string
}

// Options is an ordered set of options. Order is significant: it is the order
// the options are emitted on the command line.
type Options []Option

// Flag creates a flag-only option.
func Flag(name string) Option {
	return Option{Name: name}
}

// Value creates a single-valued option.
func Value(name, value string) Option {
	return Option{Name: name, Values: []string{value}}
}

// Values creates a multi-valued option.
func Values(name string, values ...string) Option {
	return Option{Name: name, Values: append([]string(nil), values...)}
}

// Has reports whether an option with the given name is present.
func (o Options) Has(name string) bool {
	for _, opt := range o {
		if opt.Name == name {
			return true
		}
	}
	return false
}

// With returns a copy of o where opt replaces the option of the same name,
// keeping its position, or is appended when absent.
func (o Options) With(opt Option) Options {
	ret := make(Options, 0, len(o)+1)
	replaced := false
	for _, cur := range o {
		if cur.Name == opt.Name && !replaced {
			ret = append(ret, opt)
			replaced = true
			continue
		}
		ret = append(ret, cur)
	}
	if !replaced {
		ret = append(ret, opt)
	}
	return ret
}

// WithDefaults returns a copy of o extended with every default whose name is
// not already present. Caller supplied values always win.
func (o Options) WithDefaults(defaults Options) Options {
	ret := append(Options(nil), o...)
	for _, def := range defaults {
		if !ret.Has(def.Name) {
			ret = append(ret, def)
		}
	}
	return ret
}

// Compile flattens options to a list of command line arguments.
func Compile(opts Options) []string {
	var args []string

	for _, opt := range opts {
		if opt.Name != "" {
			args = append(args, opt.Name)
		}

		// a lone empty value behaves like a flag
		if len(opt.Values) == 1 && opt.Values[0] == "" {
			continue
		}
		args = append(args, opt.Values...)
	}

	return args
}

// OptionsFromMapSlice converts an ordered YAML mapping into Options. Null
// values become flags, scalars single values and sequences multiple values.
func OptionsFromMapSlice(ms yaml.MapSlice) Options {
	opts := make(Options, 0, len(ms))
	for _, item := range ms {
		name := toString(item.Key)
		switch v := item.Value.(type) {
		case nil:
			opts = append(opts, Flag(name))
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, e := range v {
				values = append(values, toString(e))
			}
			opts = append(opts, Values(name, values...))
		default:
			opts = append(opts, Value(name, toString(v)))
		}
	}
	return opts
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
