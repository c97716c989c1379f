// Package domain holds the vault entity, its lifecycle states, and the
// validation rules that every state transition is guarded by.
//
// A vault custodies a single deposit that is released to one of two
// destinations: the success destination when the verifier attests the
// milestone before the deadline, or the failure destination once the
// deadline passes. The creator can cancel an active vault and recover
// the deposit. All three outcomes are terminal.
package domain
