// package repositories provides the local persistence layer.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation. The only
// locally persisted entity is the submission history; everything the
// dashboard renders live comes from the backend.
package repositories
