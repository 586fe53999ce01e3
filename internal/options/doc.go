// Package options holds the formatter configuration.
//
// Config is a plain struct; every field carries an `opt` tag with the option
// name used in configuration files, a `default` tag and a `help` tag. The
// registry walks those tags with reflection, so adding an option is a one-line
// change. Config is filled once before a run and then only read.
//
// Three file formats are accepted, picked by extension:
//
//	reform.cfg   classic "name = value" lines, "#" comments, "type a b c" lines
//	reform.toml  a flat TOML table plus an optional types = [...] array
//	reform.yaml  a flat YAML mapping plus an optional types: [...] list
//
// Unknown keys produce a warning diagnostic. A value that does not parse is a
// fatal error.
package options
