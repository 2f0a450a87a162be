// Package rules holds the primitives shared by the eager matcher and the
// rule-list switcher: conditions, outcomes, the equality oracle and the
// declaration errors both engines report.
//
// A Condition is either a literal compared against the subject or a predicate
// over it. An Outcome is a literal, a producer, an asynchronous task, or the
// absent marker, which means "matched but contributed no result".
package rules
