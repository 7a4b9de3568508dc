/*
Package events delivers the four ordered lifecycle notifications fired around
every save/update-style persistence operation:

 1. PreEntity — method invoked, before any conversion
 2. PreNative — entity converted to native form, before the driver call
 3. PostNative — driver returned, before reverse conversion
 4. PostEntity — result converted back, last step before returning

On a successful operation all four fire exactly once, in this order. On a
driver failure the post notifications are skipped. Listeners are for
cross-cutting concerns (validation, auditing) and must not alter control
flow: return values are ignored and panics are recovered inside the notifier.

Register a full Listener implementation, or use ListenerFuncs for individual
hooks:

	notifier := events.NewNotifier(&events.ListenerFuncs{
	    OnPostEntity: func(e any) { audit.Record(e) },
	})
*/
package events
