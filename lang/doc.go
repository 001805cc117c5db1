// Package lang implements randl documents: declarative descriptions of
// randomized edits to param trees.
//
// A document is written in KDL. Top-level set nodes declare named pools of
// values and file nodes declare the edits applied to the param file whose
// name matches the node's pattern:
//
//	set "costumes" {
//	    value 0
//	    value 1
//	}
//
//	file "fighter/c0{costumes}.prc" {
//	    walk_speed {
//	        chance percent=75 {
//	            return from=1.0 to=1.5
//	        }
//	        chance percent=25 {
//	            original
//	        }
//	    }
//	    "moves.*.damage" {
//	        return set="damage"
//	    }
//	}
//
// [ParseString] and [ParseReader] compile the text into an immutable
// [Document]. Loading is all-or-nothing: any structural problem yields an
// error that satisfies [IsParseError] and no document.
//
// An [Applier] applies an [Entry] to a param tree: each edit's [Path] is
// resolved to the leaves it addresses, its [Expr] is evaluated once per leaf,
// and the result is converted to the leaf's kind. Failures during apply
// satisfy [IsEvalError]. Randomness comes from a [Rand] that can be seeded
// for reproducible output.
package lang
