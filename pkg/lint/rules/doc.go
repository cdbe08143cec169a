// Package rules provides the built-in lint rules for tsdoclint.
//
// # Rules
//
//   - TSD001: tsdoc-required - Exported declarations, and the properties of
//     exported interfaces, need a block comment that parses as valid TSDoc.
//
// # Options
//
// TSD001 accepts:
//
//   - exempt_props_interfaces (bool, default true): do not require a comment
//     on exported interfaces whose name contains exempt_name_substring.
//   - exempt_name_substring (string, default "Props").
//
// The documenting comment is the first of the comments between the nearest
// preceding code token and the declaration. Because collection stops at that
// token, a comment separated from the declaration by code is never a
// candidate, and there is no option to accept one.
//
// Rules register themselves with lint.DefaultRegistry from init, so importing
// this package for side effects is enough to make them available.
package rules
