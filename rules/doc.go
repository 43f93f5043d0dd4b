// Package rules holds the immutable configuration data the transcript
// pipeline runs on: the vocabulary canonicalization rules, the filler lists
// for each cleanliness level, and the topic taxonomy.
//
// Every list here is ordered and order is part of the contract. Vocabulary
// variants are matched in configuration order, so a variant that appears as a
// whole word inside a longer variant must be listed after it; Validate
// rejects sets that break this. Filler levels are cumulative: medium extends
// light and aggressive extends medium. Topics are scored in declaration order
// and the earliest topic wins a tie.
//
// Default returns the Portuguese rule set used for pitch-event recordings.
// LoadFile reads a YAML file and overlays it on top of those defaults.
package rules
