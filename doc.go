// Package dashstate is the composition root for the dashboard state layer.
//
// It connects the state components (session, notes, todo overrides) with a
// durable keyed store and the storage adapters behind it.
//
// Every piece of client state is a JSON value under a string key:
//
//	myapp_session              {"authenticated": bool, "user": {...}}
//	notes_v1                   newest-first array of notes
//	todos_override_<userId>    todo id -> completed
//
// Persistence is best effort. A failed write or a corrupt value is logged and
// the component keeps working from memory; nothing in the state layer returns
// a storage error to its caller.
//
// Usage:
//
//	app, err := dashstate.New("./.dashstate",
//		dashstate.WithAdapter("fs"),
//		dashstate.WithLogger(logger),
//	)
//	defer app.Close()
//
//	app.Session.Login(ctx, "admin", "password")
//	app.Notes.Add(ctx, "Call bank", notes.Important)
//	app.Todos(ctx, 1).Toggle(ctx, todo)
package dashstate
