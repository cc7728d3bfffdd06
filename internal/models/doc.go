// Package models defines the core domain models for MoneyMate.
//
// # Ownership
//
// Users are the root of everything: a User owns Customers (counterparties
// whose running balance the user tracks) and belongs to SplitRooms (groups
// of users sharing expenses).
//
// Entries belong to exactly one Customer; SplitExpenses and Settlements
// belong to exactly one SplitRoom. Neither has a lifecycle outside its
// owning aggregate.
//
// # Design principles
//
//  1. Relationships are ID strings, never pointers, to avoid circular
//     references between models.
//  2. Child sequences (a customer's entries, a room's expenses) are derived
//     by query on the child's back-reference. There is no duplicated
//     forward list to keep consistent.
//  3. Timestamps are Unix seconds throughout.
package models
