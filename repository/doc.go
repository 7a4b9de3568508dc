/*
Package repository provides the synchronous repository façade and the
persistence workflow it is built on.

The Workflow is the central sequencing authority for save/update operations.
For every successful put it performs, strictly in order:

 1. fire PreEntity
 2. convert entity → native
 3. fire PreNative
 4. invoke the driver action
 5. fire PostNative
 6. convert native → entity
 7. fire PostEntity
 8. return the round-tripped entity

A driver failure propagates unchanged to the caller and skips the remaining
steps. The workflow performs no retries; retry policy, if any, belongs to the
driver.

KeyValue[T] is the CRUD surface callers use:

	repo, err := repository.New[Player](bucket, convert.NewIndexMapConverter[Player](), notifier)
	saved, err := repo.Put(ctx, &player)
	found, err := repo.Get(ctx, "PLAYER#123")
	err = repo.Remove(ctx, "PLAYER#123")

Get returns (nil, nil) both for an absent key and for a stored value that
does not convert to a T — an empty result, not an error.
*/
package repository
