// Package fountain implements the rateless XOR fountain code that backs
// multipart UR transport: a payload is split into fixed-size fragments,
// the first seqLen parts are sent verbatim, and every part beyond that is
// a degree-weighted XOR mixture of pseudorandomly chosen fragments, the
// indices reproducible by any receiver from (checksum, seqLen, seqNum)
// alone via a seeded Xoshiro256** generator.
package fountain
