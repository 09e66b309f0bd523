// Package recipe defines the document model shared by every other
// internal package.
//
// This package contains type definitions, canonical keys, and document
// validation. All other internal packages import recipe; recipe imports
// only internal/semver. This keeps the document model the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - Ingredient amounts and scalar metadata are strings: values arrive
//     from form input ("2", "2.5", "1/2 oz") and compare by exact text
//   - Family and ingredient identity use case-folded, NFC-normalized
//     keys (Key), never raw display names
//   - All JSON and YAML tags use snake_case
package recipe
