// Package history groups buffer mutations into transactions.
//
// A Transaction records insert, erase and replace operations expressed
// against the buffer as it was when the transaction began. Apply sorts
// them by original position and applies them in one pass, shifting each
// target by the cumulative length change of the operations applied
// before it:
//
//	tx := history.NewTransaction("fix first letter")
//	tx.Insert(2, "abc")
//	tx.Insert(5, "xyz")
//	applied, err := tx.Apply(buf)
//
// The second insert lands at 8, not 5.
//
// # Journal
//
// The Log keeps one entry per committed transaction. A host that
// implements undo would treat each entry as one undo step; this package
// only records them.
package history
