// Package errors provides a comprehensive error handling solution for the daddeck-api project.
//
// This package is inspired by the goaterr pattern and provides:
//   - Structured errors with codes, messages, and metadata
//   - HTTP status mapping for API responses
//   - User-friendly error messages
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("card not found")
//	err := errors.InvalidArgumentf("invalid pack count: %d", count)
//
// Adding metadata:
//
//	err := errors.NotFound("card not found").
//	    WithMeta("card_id", cardID).
//	    WithMeta("player_id", playerID)
//
// Wrapping errors:
//
//	if err := repo.Get(id); err != nil {
//	    return errors.Wrap(err, "failed to get collection")
//	}
//
// Changing error semantics:
//
//	if err := db.Query(); err != nil {
//	    if isNotFound(err) {
//	        return errors.WrapWithCode(err, errors.CodeNotFound, "recipe not found")
//	    }
//	    return errors.Wrap(err, "database error")
//	}
//
// # Error Checking
//
// Checking error types:
//
//	if errors.IsNotFound(err) {
//	    // handle missing entity
//	}
//
// Extracting the code for transport:
//
//	status := errors.GetCode(err).HTTPStatus()
//
// # Validation
//
// Accumulating field-level validation failures:
//
//	vb := errors.NewValidationBuilder()
//	if input.PlayerID == "" {
//	    vb.RequiredField("PlayerID")
//	}
//	if input.Count < 1 || input.Count > 10 {
//	    vb.InvalidField("Count", "must be between 1 and 10")
//	}
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
