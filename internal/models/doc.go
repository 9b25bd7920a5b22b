// Package models defines the documents and records handled by jukeseed.
//
// The package contains two categories of types:
//
// 1. Store documents: written to the document store by the seeder
//   - [User] : a jukebox user bound to one session
//   - [Session] : a jukebox session with its ordered song list
//   - [Song] : a track reference held in a session's song list
//   - [Account] : a credentialed database account with its [RoleBinding] grants
//
// 2. Journal records: kept in the local sqlite journal
//   - [SeedRun] : one attempt at seeding a store and its outcome
//
// [User] and [Session] implement [Document].
package models
