package main

import "errors"

// errSilent makes the process exit 1 without another message; whatever
// needed saying was already printed.
var errSilent = errors.New("")
