// Package descriptor introspects struct types for the mapping engine.
//
// A TypeDescriptor lists the exported members of a struct in declaration
// order, with promoted fields of embedded structs inlined where they appear.
// Descriptors are computed once per type and cached; mapping never
// rediscovers members per call.
//
// Key types:
//   - TypeKey: comparable identity of a type, pointers stripped
//   - MemberDescriptor: name, declared type, collection element key, index path
//   - Cache: concurrent-safe memo of descriptors
package descriptor
