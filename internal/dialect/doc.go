// Package dialect names the C-family languages reform understands and decides
// which one a file is written in.
//
// The language normally comes from an explicit tag (-l CPP) or from the file
// extension. Headers are the ambiguous case: a ".h" file is C by default, but
// Sniff can collect evidence from the text (namespace, template, "::") and
// promote it to C++ when asked to.
package dialect
