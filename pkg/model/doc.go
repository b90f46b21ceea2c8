// Package model defines the template field schema and the data records that
// populate it. A Template pairs markup with an ordered list of Field
// definitions; a Record maps field ids to tagged Value instances. Repeater
// fields hold their rows as a List value whose entries are Records keyed by the
// repeater's child ids. Builders reside in internal/model but return the types
// defined here.
package model
