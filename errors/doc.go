/*
Package errors provides semantic error types for the automapper library.

Every failure the engine can report has a sentinel and a typed error carrying
the type pair and member involved. Typed errors implement Is, so they can be
checked with the standard errors.Is() function or the provided helpers.

Configuration errors (raised while building or registering definitions):

	var (
	    ErrUnsupportedType  = errors.New("unsupported type")
	    ErrDuplicateMapping = errors.New("duplicate mapping")
	    ErrRegistrySealed   = errors.New("registry is sealed")
	    ErrInvalidRule      = errors.New("invalid mapping rule")
	)

Mapping errors (raised by Map):

	var (
	    ErrMappingNotFound     = errors.New("mapping not found")
	    ErrSourceMemberMissing = errors.New("source member missing")
	    ErrTypeMismatch        = errors.New("type mismatch")
	    ErrUnresolvedMember    = errors.New("unresolved member")
	)

Usage:

	view, err := automapper.Map[PersonView](mapper, person)
	if err != nil {
	    if errors.IsMappingNotFound(err) {
	        // a profile was never registered for this pair
	    }
	    return err
	}

Mapping is deterministic, so none of these errors are worth retrying.
IsConfigurationError groups the kinds that indicate a configuration bug.
*/
package errors
