/*
Package mapstore provides an object-mapping convenience layer over key-value
storage drivers, letting applications work with typed Go entities while the
driver deals in native stored values.

The layers, from the application down:

  - repository.KeyValue[T] and async.Repository[T]: the typed façades
    applications call
  - convert.Converter[T]: maps entities to and from native stored values,
    by default through registered index maps
  - events.Notifier: fire-and-forget lifecycle notifications around every
    put (PreEntity, PreNative, PostNative, PostEntity)
  - driver.BucketManager: the storage driver, with optional capabilities
    (TTL, updates, queries, asynchronous execution) discovered by type
    assertion

Basic usage:

	registry.RegisterIndexMap[Player](map[string]string{
	    "PK": "PLAYER#{ID}",
	    "SK": "PLAYER#{ID}",
	})

	bucket, _ := ddb.New(accessKey, secretKey, region, table)
	repo, _ := mapstore.NewRepository[Player](bucket, nil)

	saved, err := repo.Put(ctx, &player)
	found, err := repo.Get(ctx, "PLAYER#123")

MultiTypeRepositories manages named repositories across entity types for
applications that address several buckets:

	mtr := mapstore.NewMultiTypeRepositories()
	mapstore.RegisterRepository(mtr, "players", repo)
	repo, _ := mapstore.GetRepository[Player](mtr, "players")
*/
package mapstore
