// Package script reads operation scripts and replays them against any
// backend of the render contract.
//
// A script is a width, an optional backend name and a list of operations:
//
//	width: 40
//	ops:
//	  - op: start_block
//	  - op: text
//	    text: "Hello, world"
//	  - op: end_block
//	  - op: subrender
//	    prefixes: ["* ", "  "]
//	    ops:
//	      - op: text
//	        text: first item
//	  - op: columns
//	    collapse: true
//	    columns:
//	      - width: 10
//	        ops: [{op: text, text: left}]
//	      - width: 10
//	        ops: [{op: text, text: right}]
//
// TOML scripts use the same keys, with ops as an array of tables.
package script
