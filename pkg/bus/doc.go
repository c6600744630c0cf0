// Package bus provides a minimal synchronous publish/subscribe primitive
// keyed by named actions. It bridges imperative dispatch calls to the
// reactive display surfaces that render notifications.
//
// A Bus fans an emitted event out to every listener registered for that
// action, in registration order. Listeners are identified by the id
// returned from On, which allows selective removal even though Go
// function values are not comparable.
package bus
