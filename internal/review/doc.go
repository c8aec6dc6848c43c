// Package review holds the core review model: the normalized Review item
// with its danger classification and total ordering, the multi-server
// query aggregator, and the abandon policy.
//
// Everything here is transport-agnostic. Servers enter the package only
// through the Endpoint and Origin interfaces, and time enters only through
// explicit instants, so classification and ordering stay pure and
// independently testable.
package review
