package erase

import "errors"

// ErrParse means the parser reported one or more diagnostics against the
// input; none of it is trustworthy enough to walk.
var ErrParse = errors.New("parse error")

// ErrUnsupported means the input contains a construct this transform
// deliberately refuses to erase (spec.md §4.1, §7): enum declarations,
// `this` parameters, `export =`, `export as namespace`, `import =`,
// `declare module`, `declare global`, bare `export *`. An exported
// ambient declaration (`export declare const ...`) is not refused: it is
// blanked like any other type-only declaration.
var ErrUnsupported = errors.New("unsupported construct")

// ErrInternal means the walker reached a shape the grammar should make
// unreachable — a missing required child or field. It signals a bug in
// this package, or a parser/grammar mismatch, never a property of valid
// input.
var ErrInternal = errors.New("internal error")
