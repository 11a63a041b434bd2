// Package template provides key normalizers for rare-word fallback.
//
// A template collapses rare or unseen surface forms into a coarser canonical
// form before a vocabulary retries a lookup: "1984" and "2038" both fold to
// "0000", so one registered template entity covers every four-digit number.
//
// Two normalizers are provided:
//
//   - FoldDigits: the classic tagger template, folding digits to '0' and
//     lowercasing.
//   - CompileCEL: a normalizer compiled from a CEL expression over a
//     `surface` string variable, so deployments can configure their own rule
//     in config without recompiling.
package template
