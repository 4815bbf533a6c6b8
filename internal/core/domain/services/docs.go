// Package services provides domain services for the flower shop that don't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - FlowerCardExtractor: a lossy best-effort formatter that turns assistant
//     free text into displayable flower records
//   - StatusMismatch: the display-only consistency warning between an order
//     and its linked generated image
package services
