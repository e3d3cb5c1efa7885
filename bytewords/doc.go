// Package bytewords implements the Bytewords alphabet: a mapping between
// bytes and a 256-word lowercase vocabulary, in three joinable styles, with
// a mandatory trailing CRC-32 that every encode appends and every decode
// verifies and strips.
package bytewords
