// Package wizard models the host side of a multi-step form wizard: the
// per-request session, form and response containers that field plugins read
// and mutate, the named lifecycle hooks they expose, and a small pipeline that
// invokes those hooks in order.
//
// Field plugins (see components/date) implement FieldHooks. The Pipeline runs
// the GET stage (error redisplay, value population, rendering) and the POST
// stage (body normalisation, schema validation, session persistence). Step
// wraps both stages in a net/http handler.
package wizard
