// Package smsig implements a synchronized lattice-based multi-signature
// scheme (SMSig): a homomorphic one-time signature (HOTS) over a large
// NTT-friendly ring, committed via a homomorphic vector commitment
// (HVC) — a Merkle tree over a small NTT-friendly ring — with support
// for aggregating signatures, public keys, and HVC openings from
// multiple signers into a single constant-size object using ternary
// randomizers derived from the signers' roots.
//
// A signer calls KeyGen once to derive a long-term public key (an HVC
// root) and a secret key (a 32-byte seed plus the full HVC tree), then
// Sign at a synchronization index to produce a one-time signature; Sign
// refuses an index that the same secret key has already signed at. Any number of signers' signatures at the same
// index can be combined with Aggregate and checked in one shot with
// BatchVerify.
package smsig
