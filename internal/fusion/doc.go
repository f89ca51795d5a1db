// Package fusion recovers a message from three noisy, right-aligned copies by
// majority vote.
//
// Each copy may have lost words (blank entries) and may carry extra leading
// entries, so copies are aligned on their last element. At every position the
// value shared by at least two copies wins, a single non-blank value wins over
// two blanks, and three different values leave a blank placeholder.
package fusion
