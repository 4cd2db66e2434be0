// Package models defines the data model for the publishing dashboard: the
// platform enum, upload/session types, server payload shapes, and the
// persistence interfaces backing the local submission history.
package models
