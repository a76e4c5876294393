/*
Package registry holds the mapping definitions known to a mapper.

A Registry stores at most one definition per ordered (source, target) type
pair. Registration happens during a configuration phase:

	reg := registry.New(registry.WithLogger(logger))
	if err := reg.Register(def); err != nil {
	    return err
	}
	reg.Seal()

Definitions that request DeriveReverse are registered together with their
derived reverse, atomically: if either pair is taken, neither is stored.

After Seal the table is frozen. Register fails with a RegistrySealedError and
Resolve, Has, Len and Pairs read without taking a lock, so a sealed registry
can be shared by any number of goroutines. Resolve matches the exact pair
only; there is no fallback through base types or interfaces.
*/
package registry
