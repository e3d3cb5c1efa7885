// Package ur implements the Uniform Resource string transport:
// "ur:<type>/<bytewords>" for single-part payloads and
// "ur:<type>/<seqNum>-<seqLen>/<bytewords>" for fountain-coded multipart
// ones, built on bytewords and fountain.
package ur
