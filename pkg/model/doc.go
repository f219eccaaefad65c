// Package model provides the reactive data model consumed by user interface drivers.
//
// An application describes its interface semantically: typed variables holding
// its data, and actions operating on them. A driver renders those as widgets
// and keeps them in sync through the observer protocol defined here. The
// package has no dependency on any rendering toolkit.
//
// # Entities
//
// Every object shown to a human embeds [Entity]: a label, an icon, a help
// text and an owning [Context]. Changing any of these notifies the
// [EntityObserver]s of the entity.
//
// # Types
//
// A [Type] describes the shape and default value of a piece of data. It is
// one of [StandardType], [EnumType], [RangeType], [RecordType] or
// [CollectionType]. Use [Visit] for exhaustive matching:
//
//	model.Visit(v.Type(), myRenderer{})
//
// # Variables
//
// [Var] is an observable value cell:
//
//	count := model.NewVar(0, model.Label("Count"))
//	count.AddObserver(model.UpdateFunc(func(v model.AbstractVar, val any) {
//	    fmt.Println("count is now", val)
//	}))
//	count.Set(1)
//
// Set notifies every observer synchronously, in registration order, even when
// the value is unchanged. Nested Set calls made from an observer complete their
// own fan-out before the outer one resumes.
//
// # Actions
//
// [Action] wraps an apply function and an optional check function, and
// declares the variables its enablement depends on:
//
//	inc := model.NewAction(func(con any) { count.Set(count.Get().(int) + 1) },
//	    model.Label("Increment"),
//	    model.DependsOn(count),
//	    model.CheckFunc(func() bool { return count.Get().(int) < 10 }),
//	)
//
// A widget bound to an action calls Observe when it becomes visible and
// Ignore when it is hidden, so only live widgets receive dependency updates.
//
// # Threading
//
// The model is single-threaded. All calls must happen on the UI thread.
package model
