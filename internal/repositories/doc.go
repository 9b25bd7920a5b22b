// Package repositories implements persistence for jukeseed.
//
// Document store repositories write and read fixtures and accounts through the MongoDB driver:
//   - [DocumentRepository] : generic insert/get/count for any [models.Document]
//   - [AccountRepository] : database accounts via the createUser and usersInfo commands
//
// The local run journal lives in sqlite:
//   - [RunRepository] : seed run history with sequence numbers
//
// Store errors are classified so callers can match [shared.ErrAlreadyExists] and [shared.ErrNotFound]
// with errors.Is while the driver error stays in the chain.
package repositories
