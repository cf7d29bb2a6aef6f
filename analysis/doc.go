// SPDX-License-Identifier: EPL-2.0

// Package analysis measures and labels recorded clips.
//
// Describe reports duration and level. Assess adds spectral centroid,
// rolloff and zero-crossing rate and turns them into a small quality score
// with human-readable notes. HeuristicClassifier guesses the recording
// environment from the same features at 16 kHz, and Holder owns a
// classifier that is expensive to build, loading it once on first use.
package analysis
