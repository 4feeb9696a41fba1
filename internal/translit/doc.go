// Package translit converts script-specific text to its closest Latin
// spelling.
//
// Each supported locale owns a fixed source-to-Latin table. Letters outside
// the table are decomposed and stripped of combining marks so accented Latin
// text folds to plain ASCII; anything still non-ASCII is left for the caller
// to sanitize.
package translit
