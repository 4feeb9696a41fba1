// Package textutil turns arbitrary file stems into safe filename fragments.
//
// NormalizeStem transliterates the stem through the translit package and
// then collapses every run of characters outside [A-Za-z0-9.-] into a single
// underscore. The output never contains path separators or control
// characters, and normalizing an already normalized stem returns it
// unchanged.
package textutil
