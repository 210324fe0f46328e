// Package loader implements module loaders for importability checks.
//
// A loader answers one question: can the named module be imported right
// now, in this directory, without raising? Loading is not sandboxed.
// Whatever the module runs at import time runs here too.
package loader
