// Package compare implements the semantic comparison pipeline: the
// structural diff of two recipe documents, the weighted similarity
// score over that diff, and the follow-up recommendation.
//
// Everything here is pure computation. No I/O, no clocks, no stores;
// the same pair of documents always produces the same Result, and all
// output slices are sorted so rendered reports are byte-stable.
//
// Ingredients are matched by canonical name key (recipe.Key), never by
// position: reordering an ingredient list is not a change. Instruction
// steps are aligned positionally; inserting a step in the middle
// cascades into change records for every later position. That is a
// known limitation of positional alignment, kept deliberately.
package compare
