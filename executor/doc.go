/*
Package executor maps source instances onto new target instances using the
definitions held by a registry.

	exec := executor.New(reg, executor.WithStrict(true))
	out, err := exec.Map(person, descriptor.KeyOf[PersonView]())

For each (source, target) pair the executor compiles a Plan: one Step per
target member, in declaration order. A member with an explicit rule follows
it. A member without one is resolved by convention:

 1. copy the same-named source member when its type is compatible, converting
    scalars through the convert registry when needed;
 2. otherwise delegate it when both sides are structs, or collections of
    structs, and their pair is registered;
 3. otherwise, with WithFlattening, read a nested path (AddressStreet from
    Address.Street) or a length (OrderCount from Orders);
 4. otherwise the member is unresolved. Strict executors fail with an
    UnresolvedMemberError, permissive ones leave the zero value.

Delegation resolves the nested pair from the runtime type of each nested
value. Nil nested values and nil collections stay nil without consulting the
registry. Collections keep source order and length.

Plans are cached once the registry is sealed. Map never writes to the source;
slices and maps copied by convention are cloned so the result shares no
backing storage with it. Nested delegation is bounded by WithMaxDepth, which
turns a delegation cycle into a MaxDepthExceededError instead of a stack
overflow.
*/
package executor
