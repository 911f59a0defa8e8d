// Package integration contains the core domain model for synchronizing
// master data and sales orders between this system and external e-commerce
// platforms.
//
// The identity model is built on three concepts:
//
//   - Integration: one configured connection to one external platform instance.
//   - ExternalRecord: a cached, integration-scoped copy of a record living in
//     the external system, keyed by its external code.
//   - Mapping: the association row linking an internal entity to one
//     ExternalRecord. Mappings are the only path for id translation in either
//     direction.
//
// Platform specifics live behind the Adapter port; persistence lives behind
// the repository interfaces declared next to each entity.
package integration
