// Copyright (c) 2026 The ipdiff authors
// SPDX-License-Identifier: MIT

// Package ipdiff implements set algebra over IPv4 and IPv6 address
// collections.
//
// Given two collections of address specifications (single addresses, CIDR
// blocks or explicit ranges), the engine computes the set difference and
// re-expresses the result as a minimal, or boundary-constrained, list of
// CIDR blocks, together with exact address counts and proportional
// geometry for rendering.
//
// The pipeline is a chain of pure functions:
//
//	text -> parse -> normalize -> difference -> aggregate -> summarize
//
// All address arithmetic is done on fixed 128-bit unsigned integers and
// all counts are reported as exact decimal strings, so a full ::/0 is
// handled without precision loss. Every stage runs in time proportional
// to the number of intervals and emitted blocks, never to the number of
// addresses.
//
// The engine holds no state between invocations; a [DiffResult] is owned
// exclusively by its caller.
package ipdiff
